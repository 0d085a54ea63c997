package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quizhall/quizhall/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) identity(id, username string) *model.Identity {
	return &model.Identity{
		ID:           model.IdentityID(id),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
}

// Identity tests

func (s *StorageSuite) TestCreateAndGetIdentity() {
	identity := s.identity("u_1", "alice")
	player := &model.PlayerProfile{IdentityID: "u_1", DisplayName: "Alice"}

	err := s.storage.CreateIdentity(s.ctx, identity, player, nil)
	s.Require().NoError(err)

	got, err := s.storage.GetIdentity(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal("alice", got.Username)

	byName, err := s.storage.GetIdentityByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(identity.ID, byName.ID)
}

func (s *StorageSuite) TestCreateIdentityRejectsDuplicateUsername() {
	_ = s.storage.CreateIdentity(s.ctx, s.identity("u_1", "alice"),
		&model.PlayerProfile{IdentityID: "u_1", DisplayName: "Alice"}, nil)

	err := s.storage.CreateIdentity(s.ctx, s.identity("u_2", "alice"),
		&model.PlayerProfile{IdentityID: "u_2", DisplayName: "Other"}, nil)
	s.ErrorIs(err, model.ErrUsernameTaken)

	// No partial write for the rejected identity
	_, err = s.storage.GetIdentity(s.ctx, "u_2")
	s.ErrorIs(err, model.ErrIdentityNotFound)
	_, err = s.storage.GetPlayerProfile(s.ctx, "u_2")
	s.ErrorIs(err, model.ErrProfileNotFound)
}

func (s *StorageSuite) TestUsernameLookupIsCaseSensitive() {
	_ = s.storage.CreateIdentity(s.ctx, s.identity("u_1", "alice"),
		&model.PlayerProfile{IdentityID: "u_1", DisplayName: "Alice"}, nil)

	_, err := s.storage.GetIdentityByUsername(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrIdentityNotFound)
}

func (s *StorageSuite) TestGetIdentityNotFound() {
	_, err := s.storage.GetIdentity(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrIdentityNotFound)
}

// Profile tests

func (s *StorageSuite) TestProfilesStoredWithIdentity() {
	identity := s.identity("u_1", "root")
	identity.IsAdminCapable = true
	player := &model.PlayerProfile{IdentityID: "u_1", DisplayName: "Root"}
	admin := &model.AdminProfile{IdentityID: "u_1", StaffNote: "bootstrap"}

	err := s.storage.CreateIdentity(s.ctx, identity, player, admin)
	s.Require().NoError(err)

	gotPlayer, err := s.storage.GetPlayerProfile(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal("Root", gotPlayer.DisplayName)

	gotAdmin, err := s.storage.GetAdminProfile(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal("bootstrap", gotAdmin.StaffNote)
}

func (s *StorageSuite) TestAdminProfileAbsentForPlainPlayer() {
	_ = s.storage.CreateIdentity(s.ctx, s.identity("u_1", "alice"),
		&model.PlayerProfile{IdentityID: "u_1", DisplayName: "Alice"}, nil)

	_, err := s.storage.GetAdminProfile(s.ctx, "u_1")
	s.ErrorIs(err, model.ErrProfileNotFound)
}

// Question tests

func (s *StorageSuite) TestCreateQuestionAssignsAscendingIDs() {
	q1 := &model.Question{Text: "first", OptionA: "a", OptionB: "b", Correct: "A"}
	q2 := &model.Question{Text: "second", OptionA: "a", OptionB: "b", Correct: "B"}

	s.Require().NoError(s.storage.CreateQuestion(s.ctx, q1))
	s.Require().NoError(s.storage.CreateQuestion(s.ctx, q2))

	s.Less(q1.ID, q2.ID)
}

func (s *StorageSuite) TestListQuestionsOrderedWithPaging() {
	for i := 0; i < 5; i++ {
		q := &model.Question{Text: "q", OptionA: "a", OptionB: "b", Correct: "A"}
		s.Require().NoError(s.storage.CreateQuestion(s.ctx, q))
	}

	page, err := s.storage.ListQuestions(s.ctx, 3, 3)
	s.Require().NoError(err)
	s.Len(page, 2)
	s.Equal(model.QuestionID(4), page[0].ID)
	s.Equal(model.QuestionID(5), page[1].ID)

	count, err := s.storage.CountQuestions(s.ctx)
	s.Require().NoError(err)
	s.Equal(5, count)
}

func (s *StorageSuite) TestListQuestionsPastEndReturnsEmpty() {
	page, err := s.storage.ListQuestions(s.ctx, 10, 3)
	s.Require().NoError(err)
	s.Empty(page)
}

func (s *StorageSuite) TestUpdateQuestion() {
	q := &model.Question{Text: "before", OptionA: "a", OptionB: "b", Correct: "A"}
	s.Require().NoError(s.storage.CreateQuestion(s.ctx, q))

	updated := *q
	updated.Text = "after"
	s.Require().NoError(s.storage.UpdateQuestion(s.ctx, &updated))

	got, err := s.storage.GetQuestion(s.ctx, q.ID)
	s.Require().NoError(err)
	s.Equal("after", got.Text)
}

func (s *StorageSuite) TestUpdateQuestionNotFound() {
	err := s.storage.UpdateQuestion(s.ctx, &model.Question{ID: 99, Text: "x", OptionA: "a", OptionB: "b", Correct: "A"})
	s.ErrorIs(err, model.ErrQuestionNotFound)
}

func (s *StorageSuite) TestDeleteQuestion() {
	q := &model.Question{Text: "q", OptionA: "a", OptionB: "b", Correct: "A"}
	s.Require().NoError(s.storage.CreateQuestion(s.ctx, q))

	s.Require().NoError(s.storage.DeleteQuestion(s.ctx, q.ID))

	_, err := s.storage.GetQuestion(s.ctx, q.ID)
	s.ErrorIs(err, model.ErrQuestionNotFound)
}

func (s *StorageSuite) TestDeleteQuestionNotFound() {
	err := s.storage.DeleteQuestion(s.ctx, 12345)
	s.ErrorIs(err, model.ErrQuestionNotFound)
}
