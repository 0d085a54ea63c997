package factory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/services/auth"
	"github.com/quizhall/quizhall/internal/services/roles"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) seedQuestions(n int) []*model.Question {
	created := make([]*model.Question, 0, n)
	for i := 1; i <= n; i++ {
		q, err := s.app.QuestionService.Create(s.ctx, &model.Question{
			Text:    fmt.Sprintf("Question %d?", i),
			OptionA: "right",
			OptionB: "wrong",
			Correct: model.OptionLetterA,
		})
		s.Require().NoError(err)
		created = append(created, q)
	}
	return created
}

// Test: full player journey from registration to a perfect score
func (s *IntegrationSuite) TestPlayerJourney() {
	s.seedQuestions(6)

	_, err := s.app.AuthService.Register(s.ctx, "alice", "alice@example.com", "password1", "Alice")
	s.Require().NoError(err)

	session, err := s.app.AuthService.Login(s.ctx, "alice", "password1", roles.RolePlayer)
	s.Require().NoError(err)

	quiz, err := s.app.QuestionService.QuizSet(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(quiz, 5)

	answers := make(map[model.QuestionID]string, len(quiz))
	for _, q := range quiz {
		answers[q.ID] = q.Correct
	}

	result := s.app.ScoringService.Score(quiz, answers)
	s.Equal(5, result.Score)
	s.Equal(100.0, result.Percentage)

	// Session remains valid for the whole journey
	_, err = s.app.AuthService.ValidateSession(session.Token)
	s.NoError(err)
}

// Test: provisioned admin passes both role gates
func (s *IntegrationSuite) TestProvisionedAdminHoldsBothRoles() {
	identity, err := s.app.AuthService.ProvisionAdmin(s.ctx, "root", "root@example.com", "password1", "bootstrap")
	s.Require().NoError(err)

	membership, err := s.app.RoleResolver.Resolve(s.ctx, identity)
	s.Require().NoError(err)
	s.True(membership.IsAdmin)
	s.True(membership.IsPlayer)
	s.Equal("/admin/home", roles.LandingPath(membership))

	_, err = s.app.AuthService.Login(s.ctx, "root", "password1", roles.RoleAdmin)
	s.NoError(err)
	_, err = s.app.AuthService.Login(s.ctx, "root", "password1", roles.RolePlayer)
	s.NoError(err)
}

// Test: a plain player cannot pass the admin gate
func (s *IntegrationSuite) TestPlayerCannotUseAdminLogin() {
	_, err := s.app.AuthService.Register(s.ctx, "bob", "bob@example.com", "password1", "Bob")
	s.Require().NoError(err)

	_, err = s.app.AuthService.Login(s.ctx, "bob", "password1", roles.RoleAdmin)
	s.ErrorIs(err, auth.ErrWrongRole)
}

// Test: admin edits flow straight through to the quiz set
func (s *IntegrationSuite) TestQuestionEditsReachQuizSet() {
	created := s.seedQuestions(5)

	created[0].Text = "Updated question?"
	s.Require().NoError(s.app.QuestionService.Update(s.ctx, created[0]))

	s.Require().NoError(s.app.QuestionService.Delete(s.ctx, created[4].ID))

	quiz, err := s.app.QuestionService.QuizSet(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(quiz, 4)
	s.Equal("Updated question?", quiz[0].Text)
}

// Test: session expiry is driven by the injected clock
func (s *IntegrationSuite) TestSessionExpiry() {
	_, err := s.app.AuthService.Register(s.ctx, "carol", "carol@example.com", "password1", "")
	s.Require().NoError(err)

	session, err := s.app.AuthService.Login(s.ctx, "carol", "password1", roles.RolePlayer)
	s.Require().NoError(err)

	s.app.MockClock.Advance(auth.DefaultConfig().SessionDuration + 1)

	_, err = s.app.AuthService.ValidateSession(session.Token)
	s.ErrorIs(err, auth.ErrInvalidSession)
}
