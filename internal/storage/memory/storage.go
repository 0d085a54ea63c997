package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	identities     map[model.IdentityID]*model.Identity
	usernameIndex  map[string]model.IdentityID
	playerProfiles map[model.IdentityID]*model.PlayerProfile
	adminProfiles  map[model.IdentityID]*model.AdminProfile
	questions      map[model.QuestionID]*model.Question
	nextQuestionID model.QuestionID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		identities:     make(map[model.IdentityID]*model.Identity),
		usernameIndex:  make(map[string]model.IdentityID),
		playerProfiles: make(map[model.IdentityID]*model.PlayerProfile),
		adminProfiles:  make(map[model.IdentityID]*model.AdminProfile),
		questions:      make(map[model.QuestionID]*model.Question),
		nextQuestionID: 1,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Identity operations

func (s *Storage) CreateIdentity(ctx context.Context, identity *model.Identity, player *model.PlayerProfile, admin *model.AdminProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernameIndex[identity.Username]; taken {
		return model.ErrUsernameTaken
	}

	s.identities[identity.ID] = identity
	s.usernameIndex[identity.Username] = identity.ID
	if player != nil {
		s.playerProfiles[identity.ID] = player
	}
	if admin != nil {
		s.adminProfiles[identity.ID] = admin
	}
	return nil
}

func (s *Storage) GetIdentity(ctx context.Context, id model.IdentityID) (*model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.identities[id]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	return identity, nil
}

func (s *Storage) GetIdentityByUsername(ctx context.Context, username string) (*model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	identity, ok := s.identities[id]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	return identity, nil
}

// Profile operations

func (s *Storage) GetPlayerProfile(ctx context.Context, id model.IdentityID) (*model.PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.playerProfiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return profile, nil
}

func (s *Storage) GetAdminProfile(ctx context.Context, id model.IdentityID) (*model.AdminProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.adminProfiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return profile, nil
}

// Question operations

func (s *Storage) CreateQuestion(ctx context.Context, question *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	question.ID = s.nextQuestionID
	s.nextQuestionID++
	s.questions[question.ID] = question
	return nil
}

func (s *Storage) GetQuestion(ctx context.Context, id model.QuestionID) (*model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	question, ok := s.questions[id]
	if !ok {
		return nil, model.ErrQuestionNotFound
	}
	return question, nil
}

func (s *Storage) UpdateQuestion(ctx context.Context, question *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[question.ID]; !ok {
		return model.ErrQuestionNotFound
	}
	s.questions[question.ID] = question
	return nil
}

func (s *Storage) DeleteQuestion(ctx context.Context, id model.QuestionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return model.ErrQuestionNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *Storage) ListQuestions(ctx context.Context, offset, limit int) ([]*model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ordered := make([]*model.Question, 0, len(s.questions))
	for _, q := range s.questions {
		ordered = append(ordered, q)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	if offset >= len(ordered) {
		return nil, nil
	}
	ordered = ordered[offset:]
	if limit >= 0 && limit < len(ordered) {
		ordered = ordered[:limit]
	}
	return ordered, nil
}

func (s *Storage) CountQuestions(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions), nil
}
