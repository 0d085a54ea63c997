package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/services/questions"
	"github.com/quizhall/quizhall/internal/web/middleware"
	"github.com/quizhall/quizhall/internal/web/templates/layout"
	"github.com/quizhall/quizhall/internal/web/templates/pages"
)

// AdminHandler handles the admin landing page and question management
type AdminHandler struct {
	questionService *questions.Service
	logger          *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(questionService *questions.Service, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		questionService: questionService,
		logger:          logger,
	}
}

// Home renders the admin landing page
func (h *AdminHandler) Home(w http.ResponseWriter, r *http.Request) {
	count, err := h.questionService.Count(r.Context())
	if err != nil {
		h.logger.Error("failed to count questions", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pages.AdminHomeData{
		PageData:      h.pageData(r, "Admin"),
		QuestionCount: count,
	}

	renderPage(w, r, pages.AdminHome(data))
}

// ListQuestions renders one page of the question bank
func (h *AdminHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	pageNum := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageNum = n
		}
	}

	page, err := h.questionService.List(r.Context(), pageNum)
	if err != nil {
		h.logger.Error("failed to list questions", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pages.QuestionListData{
		PageData:   h.pageData(r, "Questions"),
		Questions:  page.Questions,
		Page:       page.Number,
		TotalPages: page.TotalPages,
	}

	renderPage(w, r, pages.QuestionList(data))
}

// AddQuestionPage renders an empty question form
func (h *AdminHandler) AddQuestionPage(w http.ResponseWriter, r *http.Request) {
	data := pages.QuestionFormData{
		PageData:    h.pageData(r, "Add question"),
		Heading:     "Add question",
		Action:      "/admin/questions/add",
		FieldErrors: make(map[string]string),
	}

	renderPage(w, r, pages.QuestionForm(data))
}

// AddQuestion handles the create-question form submission
func (h *AdminHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	question, ok := h.parseQuestionForm(w, r, 0, "Add question", "/admin/questions/add")
	if !ok {
		return
	}

	created, err := h.questionService.Create(r.Context(), question)
	if err != nil {
		h.renderQuestionFormError(w, r, question, err, "Add question", "/admin/questions/add")
		return
	}

	middleware.SetFlash(w, "success", "Question added")
	h.logger.Info("admin added question", slog.Int64("question_id", int64(created.ID)))
	http.Redirect(w, r, "/admin/questions", http.StatusSeeOther)
}

// EditQuestionPage renders the form pre-filled with an existing question
func (h *AdminHandler) EditQuestionPage(w http.ResponseWriter, r *http.Request) {
	question, ok := h.lookupQuestion(w, r)
	if !ok {
		return
	}

	data := pages.QuestionFormData{
		PageData:    h.pageData(r, "Edit question"),
		Heading:     "Edit question",
		Action:      "/admin/questions/edit/" + strconv.FormatInt(int64(question.ID), 10),
		Question:    question,
		FieldErrors: make(map[string]string),
	}

	renderPage(w, r, pages.QuestionForm(data))
}

// EditQuestion handles the edit-question form submission
func (h *AdminHandler) EditQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := h.questionID(w, r)
	if !ok {
		return
	}
	action := "/admin/questions/edit/" + strconv.FormatInt(int64(id), 10)

	question, ok := h.parseQuestionForm(w, r, id, "Edit question", action)
	if !ok {
		return
	}

	if err := h.questionService.Update(r.Context(), question); err != nil {
		if errors.Is(err, model.ErrQuestionNotFound) {
			middleware.SetFlash(w, "error", "Question not found")
			http.Redirect(w, r, "/admin/questions", http.StatusSeeOther)
			return
		}
		h.renderQuestionFormError(w, r, question, err, "Edit question", action)
		return
	}

	middleware.SetFlash(w, "success", "Question updated")
	http.Redirect(w, r, "/admin/questions", http.StatusSeeOther)
}

// DeleteQuestionPage renders the delete confirmation page
func (h *AdminHandler) DeleteQuestionPage(w http.ResponseWriter, r *http.Request) {
	question, ok := h.lookupQuestion(w, r)
	if !ok {
		return
	}

	data := pages.QuestionDeleteData{
		PageData: h.pageData(r, "Delete question"),
		Question: question,
	}

	renderPage(w, r, pages.QuestionDelete(data))
}

// DeleteQuestion removes a question. Deletion is immediate; there is
// no undo.
func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := h.questionID(w, r)
	if !ok {
		return
	}

	if err := h.questionService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, model.ErrQuestionNotFound) {
			middleware.SetFlash(w, "error", "Question not found")
		} else {
			h.logger.Error("failed to delete question", slog.Any("error", err))
			middleware.SetFlash(w, "error", "Failed to delete question")
		}
		http.Redirect(w, r, "/admin/questions", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Question deleted")
	http.Redirect(w, r, "/admin/questions", http.StatusSeeOther)
}

func (h *AdminHandler) pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title:      title,
		Identity:   middleware.GetIdentity(r.Context()),
		Membership: middleware.GetMembership(r.Context()),
		Flash:      middleware.GetFlash(r.Context()),
		CSRFToken:  csrf.Token(r),
	}
}

func (h *AdminHandler) questionID(w http.ResponseWriter, r *http.Request) (model.QuestionID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		middleware.SetFlash(w, "error", "Invalid question id")
		http.Redirect(w, r, "/admin/questions", http.StatusSeeOther)
		return 0, false
	}
	return model.QuestionID(id), true
}

func (h *AdminHandler) lookupQuestion(w http.ResponseWriter, r *http.Request) (*model.Question, bool) {
	id, ok := h.questionID(w, r)
	if !ok {
		return nil, false
	}

	question, err := h.questionService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrQuestionNotFound) {
			middleware.SetFlash(w, "error", "Question not found")
		} else {
			h.logger.Error("failed to load question", slog.Any("error", err))
			middleware.SetFlash(w, "error", "Failed to load question")
		}
		http.Redirect(w, r, "/admin/questions", http.StatusSeeOther)
		return nil, false
	}
	return question, true
}

func (h *AdminHandler) parseQuestionForm(w http.ResponseWriter, r *http.Request, id model.QuestionID, heading, action string) (*model.Question, bool) {
	if err := r.ParseForm(); err != nil {
		data := pages.QuestionFormData{
			PageData:    h.pageData(r, heading),
			Heading:     heading,
			Action:      action,
			Error:       "Invalid form data",
			FieldErrors: make(map[string]string),
		}
		renderPage(w, r, pages.QuestionForm(data))
		return nil, false
	}

	return &model.Question{
		ID:      id,
		Text:    strings.TrimSpace(r.FormValue("text")),
		OptionA: strings.TrimSpace(r.FormValue("option_a")),
		OptionB: strings.TrimSpace(r.FormValue("option_b")),
		OptionC: strings.TrimSpace(r.FormValue("option_c")),
		OptionD: strings.TrimSpace(r.FormValue("option_d")),
		Correct: r.FormValue("correct"),
	}, true
}

// renderQuestionFormError re-renders the form with the submitted values
// and either a per-field validation message or a generic error.
func (h *AdminHandler) renderQuestionFormError(w http.ResponseWriter, r *http.Request, question *model.Question, err error, heading, action string) {
	data := pages.QuestionFormData{
		PageData:    h.pageData(r, heading),
		Heading:     heading,
		Action:      action,
		Question:    question,
		FieldErrors: make(map[string]string),
	}

	if verr := model.AsValidationError(err); verr != nil {
		data.FieldErrors[verr.Field] = verr.Reason
	} else {
		h.logger.Error("failed to save question", slog.Any("error", err))
		data.Error = "Failed to save question, please try again"
	}

	renderPage(w, r, pages.QuestionForm(data))
}
