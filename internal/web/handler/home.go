package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/csrf"

	"github.com/quizhall/quizhall/internal/services/roles"
	"github.com/quizhall/quizhall/internal/web/middleware"
	"github.com/quizhall/quizhall/internal/web/templates/layout"
	"github.com/quizhall/quizhall/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the public landing page. Authenticated visitors are
// sent straight to their role's landing page, admin winning when an
// identity holds both roles.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	flash := middleware.GetFlash(r.Context())

	if identity != nil {
		membership := middleware.GetMembership(r.Context())
		if path := roles.LandingPath(membership); path != "/" {
			// Carry any pending flash across the redirect; the flash
			// middleware already cleared the cookie for this request
			if flash != nil {
				middleware.SetFlash(w, flash.Type, flash.Message)
			}
			http.Redirect(w, r, path, http.StatusSeeOther)
			return
		}
	}

	data := pages.HomeData{
		PageData: layout.PageData{
			Title:     "Home",
			Identity:  identity,
			Flash:     flash,
			CSRFToken: csrf.Token(r),
		},
	}

	renderPage(w, r, pages.Home(data))
}

// renderPage renders a page component, falling back to a plain 500
func renderPage(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
