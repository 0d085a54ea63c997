package storage

import (
	"context"

	"github.com/quizhall/quizhall/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// CreateIdentity atomically stores an identity together with its
	// role profiles. player and admin may each be nil. Either all rows
	// exist afterwards or none do. Returns model.ErrUsernameTaken if
	// the username is already registered.
	CreateIdentity(ctx context.Context, identity *model.Identity, player *model.PlayerProfile, admin *model.AdminProfile) error
	GetIdentity(ctx context.Context, id model.IdentityID) (*model.Identity, error)
	GetIdentityByUsername(ctx context.Context, username string) (*model.Identity, error)

	// Profile operations; return model.ErrProfileNotFound when the
	// identity does not hold the role.
	GetPlayerProfile(ctx context.Context, id model.IdentityID) (*model.PlayerProfile, error)
	GetAdminProfile(ctx context.Context, id model.IdentityID) (*model.AdminProfile, error)

	// Question operations. CreateQuestion assigns an ascending id.
	CreateQuestion(ctx context.Context, question *model.Question) error
	GetQuestion(ctx context.Context, id model.QuestionID) (*model.Question, error)
	UpdateQuestion(ctx context.Context, question *model.Question) error
	DeleteQuestion(ctx context.Context, id model.QuestionID) error
	ListQuestions(ctx context.Context, offset, limit int) ([]*model.Question, error)
	CountQuestions(ctx context.Context) (int, error)
}
