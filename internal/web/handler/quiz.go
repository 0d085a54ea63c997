package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/services/questions"
	"github.com/quizhall/quizhall/internal/services/scoring"
	"github.com/quizhall/quizhall/internal/storage"
	"github.com/quizhall/quizhall/internal/web/middleware"
	"github.com/quizhall/quizhall/internal/web/templates/layout"
	"github.com/quizhall/quizhall/internal/web/templates/pages"
)

// QuizHandler handles the player landing page and the quiz itself
type QuizHandler struct {
	questionService *questions.Service
	scoringService  *scoring.Service
	storage         storage.Storage
	logger          *slog.Logger
}

// NewQuizHandler creates a new QuizHandler
func NewQuizHandler(questionService *questions.Service, scoringService *scoring.Service, store storage.Storage, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{
		questionService: questionService,
		scoringService:  scoringService,
		storage:         store,
		logger:          logger,
	}
}

// PlayerCommon renders the player landing page
func (h *QuizHandler) PlayerCommon(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	displayName := identity.Username
	if profile, err := h.storage.GetPlayerProfile(r.Context(), identity.ID); err == nil {
		displayName = profile.DisplayName
	}

	data := pages.PlayerCommonData{
		PageData: layout.PageData{
			Title:      "Player",
			Identity:   identity,
			Membership: middleware.GetMembership(r.Context()),
			Flash:      middleware.GetFlash(r.Context()),
			CSRFToken:  csrf.Token(r),
		},
		DisplayName: displayName,
	}

	renderPage(w, r, pages.PlayerCommon(data))
}

// QuizPage renders the quiz form with the current quiz set
func (h *QuizHandler) QuizPage(w http.ResponseWriter, r *http.Request) {
	qs, err := h.questionService.QuizSet(r.Context())
	if err != nil {
		h.logger.Error("failed to load quiz set", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pages.QuizData{
		PageData: layout.PageData{
			Title:      "Quiz",
			Identity:   middleware.GetIdentity(r.Context()),
			Membership: middleware.GetMembership(r.Context()),
			Flash:      middleware.GetFlash(r.Context()),
			CSRFToken:  csrf.Token(r),
		},
		Questions: qs,
	}

	renderPage(w, r, pages.Quiz(data))
}

// SubmitQuiz grades a submission against the current quiz set and
// renders the result. Nothing is persisted; refreshing starts over.
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/quiz", http.StatusSeeOther)
		return
	}

	qs, err := h.questionService.QuizSet(r.Context())
	if err != nil {
		h.logger.Error("failed to load quiz set", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	answers := make(map[model.QuestionID]string, len(qs))
	for _, q := range qs {
		if chosen := r.FormValue(questionFieldName(q.ID)); chosen != "" {
			answers[q.ID] = chosen
		}
	}

	result := h.scoringService.Score(qs, answers)

	data := pages.QuizResultData{
		PageData: layout.PageData{
			Title:      "Result",
			Identity:   middleware.GetIdentity(r.Context()),
			Membership: middleware.GetMembership(r.Context()),
			CSRFToken:  csrf.Token(r),
		},
		Result: result,
	}

	renderPage(w, r, pages.QuizResult(data))
}

func questionFieldName(id model.QuestionID) string {
	return "q" + strconv.FormatInt(int64(id), 10)
}
