package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quizhall/quizhall/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

func questionSet(n int) []*model.Question {
	qs := make([]*model.Question, 0, n)
	for i := 1; i <= n; i++ {
		qs = append(qs, &model.Question{
			ID:      model.QuestionID(i),
			Text:    "q?",
			OptionA: "yes",
			OptionB: "no",
			Correct: model.OptionLetterA,
		})
	}
	return qs
}

func (s *ServiceSuite) TestFullScore() {
	qs := questionSet(5)
	answers := map[model.QuestionID]string{
		1: "A", 2: "A", 3: "A", 4: "A", 5: "A",
	}

	result := s.service.Score(qs, answers)
	s.Equal(5, result.Score)
	s.Equal(5, result.Total)
	s.Equal(5, result.Attempted)
	s.Equal(0, result.NotAttempted)
	s.Equal(100.0, result.Percentage)
}

func (s *ServiceSuite) TestPartialScoreWithUnattempted() {
	qs := questionSet(5)
	answers := map[model.QuestionID]string{
		1: "A",
		2: "B",
		3: "A",
		// 4 missing, 5 blank
		5: "",
	}

	result := s.service.Score(qs, answers)
	s.Equal(2, result.Score)
	s.Equal(3, result.Attempted)
	s.Equal(2, result.NotAttempted)
	s.Equal(40.0, result.Percentage)
}

func (s *ServiceSuite) TestPercentageRoundsToTwoPlaces() {
	qs := questionSet(3)
	answers := map[model.QuestionID]string{1: "A"}

	result := s.service.Score(qs, answers)
	s.Equal(1, result.Score)
	s.Equal(33.33, result.Percentage)

	answers = map[model.QuestionID]string{1: "A", 2: "A"}
	result = s.service.Score(qs, answers)
	s.Equal(66.67, result.Percentage)
}

func (s *ServiceSuite) TestZeroQuestionsScoresZeroPercent() {
	result := s.service.Score(nil, map[model.QuestionID]string{1: "A"})
	s.Equal(0, result.Score)
	s.Equal(0, result.Total)
	s.Equal(0.0, result.Percentage)
}

func (s *ServiceSuite) TestAnswersForUnknownQuestionsAreIgnored() {
	qs := questionSet(2)
	answers := map[model.QuestionID]string{
		1:  "A",
		99: "A",
	}

	result := s.service.Score(qs, answers)
	s.Equal(1, result.Score)
	s.Equal(2, result.Total)
	s.Equal(1, result.Attempted)
}

func (s *ServiceSuite) TestGradingIsDeterministic() {
	qs := questionSet(5)
	answers := map[model.QuestionID]string{1: "A", 2: "B", 3: "A"}

	first := s.service.Score(qs, answers)
	for i := 0; i < 10; i++ {
		s.Equal(first, s.service.Score(qs, answers))
	}
}
