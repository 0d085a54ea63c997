package questions

import (
	"context"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/storage"
)

var policy = bluemonday.StrictPolicy()

const (
	// PageSize is the number of questions shown per admin listing page
	PageSize = 3
	// QuizSize is the number of questions served in one quiz attempt
	QuizSize = 5
)

// Service manages the question bank
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new question Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Create validates and stores a new question, returning it with its
// assigned id.
func (s *Service) Create(ctx context.Context, question *model.Question) (*model.Question, error) {
	sanitize(question)
	if err := validate(question); err != nil {
		return nil, err
	}

	if err := s.storage.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info("created question", slog.Int64("question_id", int64(question.ID)))
	return question, nil
}

// Get returns a single question by id
func (s *Service) Get(ctx context.Context, id model.QuestionID) (*model.Question, error) {
	return s.storage.GetQuestion(ctx, id)
}

// Update validates and saves changes to an existing question. The
// stored record keeps its id; everything else is replaced.
func (s *Service) Update(ctx context.Context, question *model.Question) error {
	sanitize(question)
	if err := validate(question); err != nil {
		return err
	}

	if err := s.storage.UpdateQuestion(ctx, question); err != nil {
		return err
	}

	s.logger.Info("updated question", slog.Int64("question_id", int64(question.ID)))
	return nil
}

// Delete removes a question from the bank
func (s *Service) Delete(ctx context.Context, id model.QuestionID) error {
	if err := s.storage.DeleteQuestion(ctx, id); err != nil {
		return err
	}

	s.logger.Info("deleted question", slog.Int64("question_id", int64(id)))
	return nil
}

// Count returns the number of questions in the bank
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.storage.CountQuestions(ctx)
}

// Page holds one page of the admin question listing
type Page struct {
	Questions  []*model.Question
	Number     int
	TotalPages int
}

// List returns one page of questions in insertion order. Pages are
// 1-based; a page past the end comes back empty rather than failing.
func (s *Service) List(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.storage.CountQuestions(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	qs, err := s.storage.ListQuestions(ctx, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, err
	}

	return &Page{
		Questions:  qs,
		Number:     page,
		TotalPages: totalPages,
	}, nil
}

// QuizSet returns the questions served to a player for one attempt:
// the first QuizSize questions of the bank in insertion order, or the
// whole bank when it holds fewer.
func (s *Service) QuizSet(ctx context.Context) ([]*model.Question, error) {
	return s.storage.ListQuestions(ctx, 0, QuizSize)
}

func sanitize(q *model.Question) {
	q.Text = strings.TrimSpace(policy.Sanitize(q.Text))
	q.OptionA = strings.TrimSpace(policy.Sanitize(q.OptionA))
	q.OptionB = strings.TrimSpace(policy.Sanitize(q.OptionB))
	q.OptionC = strings.TrimSpace(policy.Sanitize(q.OptionC))
	q.OptionD = strings.TrimSpace(policy.Sanitize(q.OptionD))
	q.Correct = strings.ToUpper(strings.TrimSpace(q.Correct))
}

// validate enforces the write-time shape of a question: text and the
// first two options are required, the correct letter must be one of
// A-D, and the option it names must be non-blank.
func validate(q *model.Question) error {
	if q.Text == "" {
		return model.NewValidationError("text", q.Text, "question text is required")
	}
	if q.OptionA == "" {
		return model.NewValidationError("option_a", q.OptionA, "option A is required")
	}
	if q.OptionB == "" {
		return model.NewValidationError("option_b", q.OptionB, "option B is required")
	}

	switch q.Correct {
	case model.OptionLetterA, model.OptionLetterB, model.OptionLetterC, model.OptionLetterD:
	default:
		return model.NewValidationError("correct", q.Correct, "correct answer must be one of A, B, C or D")
	}

	if q.OptionText(q.Correct) == "" {
		return model.NewValidationError("correct", q.Correct, "correct answer names a blank option")
	}

	return nil
}
