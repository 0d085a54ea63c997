package scoring

import (
	"math"

	"github.com/quizhall/quizhall/internal/model"
)

// Service grades quiz submissions
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// Score grades one submission against the questions it was served.
// answers maps question id to the chosen option letter; questions the
// map has no entry for (or a blank entry) count as not attempted.
// Grading is a pure function of its inputs.
func (s *Service) Score(questions []*model.Question, answers map[model.QuestionID]string) *model.Result {
	result := &model.Result{
		Total: len(questions),
	}

	for _, q := range questions {
		chosen, ok := answers[q.ID]
		if !ok || chosen == "" {
			result.NotAttempted++
			continue
		}
		result.Attempted++
		if chosen == q.Correct {
			result.Score++
		}
	}

	if result.Total > 0 {
		result.Percentage = round2(float64(result.Score) / float64(result.Total) * 100)
	}

	return result
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
