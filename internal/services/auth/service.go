package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/quizhall/quizhall/internal/dependencies/clock"
	"github.com/quizhall/quizhall/internal/dependencies/random"
	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/services/roles"
	"github.com/quizhall/quizhall/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrWrongRole          = errors.New("identity does not hold the required role")
	ErrMissingFields      = errors.New("username and password are required")
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Session represents an authenticated session bound to one identity
type Session struct {
	Token      string
	IdentityID model.IdentityID
	Identity   model.Identity
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Service handles registration, login and session management
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	random   random.Random
	resolver *roles.Resolver
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, resolver *roles.Resolver, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		random:          random,
		resolver:        resolver,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates an identity with a player profile. The two writes
// happen in a single atomic storage call, so an identity can never be
// left without its profile. Registration never grants admin capability.
func (s *Service) Register(ctx context.Context, username, email, password, displayName string) (*model.Identity, error) {
	username = SanitizeUsername(username)
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	// Duplicate check before any write; exact, case-sensitive match
	_, err := s.storage.GetIdentityByUsername(ctx, username)
	if err == nil {
		return nil, model.ErrUsernameTaken
	}
	if !errors.Is(err, model.ErrIdentityNotFound) {
		return nil, err
	}

	identity, player, err := s.newIdentity(username, email, password, false)
	if err != nil {
		return nil, err
	}
	player.DisplayName = displayNameOrDefault(displayName, username)

	if err := s.storage.CreateIdentity(ctx, identity, player, nil); err != nil {
		return nil, err
	}

	s.logger.Info("registered player",
		slog.String("identity_id", string(identity.ID)),
		slog.String("username", username),
	)
	return identity, nil
}

// ProvisionAdmin creates an admin-capable identity holding both an
// admin profile and a player profile (admins can take the quiz too).
// This is the only path that grants admin capability.
func (s *Service) ProvisionAdmin(ctx context.Context, username, email, password, staffNote string) (*model.Identity, error) {
	username = SanitizeUsername(username)
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	_, err := s.storage.GetIdentityByUsername(ctx, username)
	if err == nil {
		return nil, model.ErrUsernameTaken
	}
	if !errors.Is(err, model.ErrIdentityNotFound) {
		return nil, err
	}

	identity, player, err := s.newIdentity(username, email, password, true)
	if err != nil {
		return nil, err
	}
	player.DisplayName = username

	admin := &model.AdminProfile{
		IdentityID: identity.ID,
		StaffNote:  SanitizeString(staffNote),
		CreatedAt:  identity.CreatedAt,
	}

	if err := s.storage.CreateIdentity(ctx, identity, player, admin); err != nil {
		return nil, err
	}

	s.logger.Info("provisioned admin",
		slog.String("identity_id", string(identity.ID)),
		slog.String("username", username),
	)
	return identity, nil
}

// Login authenticates an identity and creates a session, but only if
// the identity holds the required role. The role is checked before any
// session state is committed, so a wrong-role login has no side effect.
// Unknown usernames and bad passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string, required roles.Role) (*Session, error) {
	identity, err := s.storage.GetIdentityByUsername(ctx, SanitizeUsername(username))
	if err != nil {
		if errors.Is(err, model.ErrIdentityNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	membership, err := s.resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}
	if !membership.Has(required) {
		return nil, ErrWrongRole
	}

	return s.createSession(identity), nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// GetIdentity returns the identity for a session token
func (s *Service) GetIdentity(token string) (*model.Identity, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	return &session.Identity, nil
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// newIdentity builds an identity plus its player profile skeleton
func (s *Service) newIdentity(username, email, password string, adminCapable bool) (*model.Identity, *model.PlayerProfile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	identity := &model.Identity{
		ID:             model.IdentityID("u_" + s.random.String(16, idAlphabet)),
		Username:       username,
		Email:          strings.TrimSpace(email),
		PasswordHash:   string(hash),
		IsAdminCapable: adminCapable,
		CreatedAt:      now,
	}
	player := &model.PlayerProfile{
		IdentityID: identity.ID,
		CreatedAt:  now,
	}
	return identity, player, nil
}

// createSession creates a new session for an identity
func (s *Service) createSession(identity *model.Identity) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:      "sess_" + s.random.String(32, idAlphabet),
		IdentityID: identity.ID,
		Identity:   *identity,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

func displayNameOrDefault(displayName, username string) string {
	displayName = strings.TrimSpace(SanitizeString(displayName))
	if displayName == "" {
		return username
	}
	return displayName
}
