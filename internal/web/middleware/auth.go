package middleware

import (
	"context"
	"net/http"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/services/auth"
	"github.com/quizhall/quizhall/internal/services/roles"
)

type contextKey string

const (
	identityContextKey   contextKey = "identity"
	membershipContextKey contextKey = "membership"
)

// GetIdentity retrieves the authenticated identity from the request context
// Returns nil if no identity is authenticated
func GetIdentity(ctx context.Context) *model.Identity {
	identity, _ := ctx.Value(identityContextKey).(*model.Identity)
	return identity
}

// GetMembership retrieves the resolved role membership from the request
// context. Zero value when unauthenticated.
func GetMembership(ctx context.Context) roles.Membership {
	m, _ := ctx.Value(membershipContextKey).(roles.Membership)
	return m
}

// Session returns middleware that requires an authenticated session.
// The identity and its membership are resolved once and stored in the
// request context; downstream gates and handlers never re-query.
// Redirects to the home page if not authenticated.
func Session(authService *auth.Service, resolver *roles.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := identityFromSession(r, authService)
			if identity == nil {
				SetFlash(w, "info", "Please log in first")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			membership, err := resolver.Resolve(r.Context(), identity)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), identity, membership)))
		})
	}
}

// OptionalSession resolves the session if present but never blocks
func OptionalSession(authService *auth.Service, resolver *roles.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := identityFromSession(r, authService)
			if identity == nil {
				next.ServeHTTP(w, r)
				return
			}

			membership, err := resolver.Resolve(r.Context(), identity)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), identity, membership)))
		})
	}
}

// RequireAdmin gates a route on the admin role. Denial is soft: one
// flash message and a redirect home, never a bare 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetMembership(r.Context()).Has(roles.RoleAdmin) {
			SetFlash(w, "error", "Only admins can access that page")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePlayer gates a route on the player role, with the same soft
// denial as RequireAdmin.
func RequirePlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetMembership(r.Context()).Has(roles.RolePlayer) {
			SetFlash(w, "error", "Only players can access that page")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withSession(ctx context.Context, identity *model.Identity, membership roles.Membership) context.Context {
	ctx = context.WithValue(ctx, identityContextKey, identity)
	return context.WithValue(ctx, membershipContextKey, membership)
}

func identityFromSession(r *http.Request, authService *auth.Service) *model.Identity {
	cookie, err := r.Cookie("session")
	if err != nil {
		return nil
	}

	identity, err := authService.GetIdentity(cookie.Value)
	if err != nil {
		return nil
	}

	return identity
}
