package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/services/auth"
	"github.com/quizhall/quizhall/internal/services/roles"
	"github.com/quizhall/quizhall/internal/web/middleware"
	"github.com/quizhall/quizhall/internal/web/templates/layout"
	"github.com/quizhall/quizhall/internal/web/templates/pages"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService *auth.Service
	resolver    *roles.Resolver
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, resolver *roles.Resolver) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		resolver:    resolver,
	}
}

// RegisterPage renders the registration form
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetIdentity(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.RegisterData{
		PageData: layout.PageData{
			Title:     "Register",
			Flash:     middleware.GetFlash(r.Context()),
			CSRFToken: csrf.Token(r),
		},
		FieldErrors: make(map[string]string),
	}

	renderPage(w, r, pages.Register(data))
}

// Register handles registration form submission. Success never logs
// the new player in; they are sent to the login page instead.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, r, "Invalid form data", "", "", "", nil)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	displayName := strings.TrimSpace(r.FormValue("display_name"))
	password := r.FormValue("password")
	passwordConfirm := r.FormValue("password_confirm")

	fieldErrors := make(map[string]string)

	if username == "" {
		fieldErrors["username"] = "Username is required"
	} else if len(username) < 3 {
		fieldErrors["username"] = "Username must be at least 3 characters"
	} else if len(username) > 30 {
		fieldErrors["username"] = "Username must be at most 30 characters"
	}

	if password == "" {
		fieldErrors["password"] = "Password is required"
	} else if len(password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters"
	}

	if password != passwordConfirm {
		fieldErrors["password_confirm"] = "Passwords do not match"
	}

	if len(fieldErrors) > 0 {
		h.renderRegisterError(w, r, "", username, email, displayName, fieldErrors)
		return
	}

	_, err := h.authService.Register(r.Context(), username, email, password, displayName)
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			fieldErrors["username"] = "Username already taken"
			h.renderRegisterError(w, r, "", username, email, displayName, fieldErrors)
			return
		}
		h.renderRegisterError(w, r, "Registration failed, please try again", username, email, displayName, nil)
		return
	}

	middleware.SetFlash(w, "success", "Account created! Please log in.")
	http.Redirect(w, r, "/player/login", http.StatusSeeOther)
}

// PlayerLoginPage renders the player login form
func (h *AuthHandler) PlayerLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, roles.RolePlayer, "", "")
}

// AdminLoginPage renders the admin login form
func (h *AuthHandler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, roles.RoleAdmin, "", "")
}

// PlayerLogin handles the player login form submission
func (h *AuthHandler) PlayerLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, roles.RolePlayer)
}

// AdminLogin handles the admin login form submission
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, roles.RoleAdmin)
}

// login authenticates against one required role. A valid password on
// an account lacking the role is rejected with no session established.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, required roles.Role) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, required, "", "Invalid form data")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.renderLogin(w, r, required, username, "Username and password are required")
		return
	}

	session, err := h.authService.Login(r.Context(), username, password, required)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrWrongRole):
			h.renderLogin(w, r, required, username, "This account cannot log in here")
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.renderLogin(w, r, required, username, "Invalid username or password")
		default:
			h.renderLogin(w, r, required, username, "Login failed, please try again")
		}
		return
	}

	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, "success", "Welcome back, "+session.Identity.Username+"!")

	membership, err := h.resolver.Resolve(r.Context(), &session.Identity)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, roles.LandingPath(membership), http.StatusSeeOther)
}

// Logout invalidates the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session"); err == nil {
		h.authService.InvalidateSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, required roles.Role, username, errorMsg string) {
	heading := "Player login"
	action := "/player/login"
	if required == roles.RoleAdmin {
		heading = "Admin login"
		action = "/admin/login"
	}

	data := pages.LoginData{
		PageData: layout.PageData{
			Title:     heading,
			Flash:     middleware.GetFlash(r.Context()),
			CSRFToken: csrf.Token(r),
		},
		Heading:  heading,
		Action:   action,
		Username: username,
		Error:    errorMsg,
	}

	renderPage(w, r, pages.Login(data))
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, r *http.Request, errorMsg, username, email, displayName string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}

	data := pages.RegisterData{
		PageData: layout.PageData{
			Title:     "Register",
			CSRFToken: csrf.Token(r),
		},
		Username:    username,
		Email:       email,
		DisplayName: displayName,
		Error:       errorMsg,
		FieldErrors: fieldErrors,
	}

	renderPage(w, r, pages.Register(data))
}
