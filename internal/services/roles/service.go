package roles

import (
	"context"
	"errors"
	"log/slog"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/storage"
)

// Role names a role an operation can require
type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

// Membership is the resolved role set for one identity. It is computed
// once per request and passed down; handlers never re-query profiles.
type Membership struct {
	IsPlayer bool
	IsAdmin  bool
}

// Has reports whether the membership includes the given role
func (m Membership) Has(role Role) bool {
	switch role {
	case RolePlayer:
		return m.IsPlayer
	case RoleAdmin:
		return m.IsAdmin
	}
	return false
}

// Resolver derives role membership from profile presence
type Resolver struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewResolver creates a new Resolver
func NewResolver(storage storage.Storage, logger *slog.Logger) *Resolver {
	return &Resolver{
		storage: storage,
		logger:  logger,
	}
}

// Resolve computes the membership for an identity. An identity is an
// admin if it is admin-capable or holds an AdminProfile; it is a player
// iff it holds a PlayerProfile. Pure read, no side effects.
func (r *Resolver) Resolve(ctx context.Context, identity *model.Identity) (Membership, error) {
	m := Membership{IsAdmin: identity.IsAdminCapable}

	if !m.IsAdmin {
		_, err := r.storage.GetAdminProfile(ctx, identity.ID)
		switch {
		case err == nil:
			m.IsAdmin = true
		case errors.Is(err, model.ErrProfileNotFound):
			// not an admin
		default:
			return Membership{}, err
		}
	}

	_, err := r.storage.GetPlayerProfile(ctx, identity.ID)
	switch {
	case err == nil:
		m.IsPlayer = true
	case errors.Is(err, model.ErrProfileNotFound):
		// not a player
	default:
		return Membership{}, err
	}

	return m, nil
}

// LandingPath returns the post-login destination for a membership.
// Admin wins when an identity holds both roles.
func LandingPath(m Membership) string {
	switch {
	case m.IsAdmin:
		return "/admin/home"
	case m.IsPlayer:
		return "/player/common"
	default:
		return "/"
	}
}
