package web_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizhall/quizhall/internal/model"
)

func loginAsAdmin(t *testing.T, ts *webTestServer) {
	t.Helper()
	ts.provisionAdmin("root", "password1")
	rr := ts.loginAdmin("root", "password1")
	require.Equal(t, http.StatusSeeOther, rr.Code)
}

func questionForm(text, a, b, c, d, correct string) url.Values {
	return url.Values{
		"text":     {text},
		"option_a": {a},
		"option_b": {b},
		"option_c": {c},
		"option_d": {d},
		"correct":  {correct},
	}
}

// Gate tests

func TestPlayerBlockedFromAdminRoutes(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerPlayer("alice", "password1", "Alice")
	ts.loginPlayer("alice", "password1")

	rr := ts.get("/admin/questions")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	// Denial is a flash on the landing page, not a 403
	rr = ts.followToPage(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash", "Only admins")
}

func TestAdminWithoutPlayerProfileBlockedFromQuiz(t *testing.T) {
	ts := newWebTestServer(t)

	// Build an admin-only identity directly: admin profile, no player profile
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	identity := &model.Identity{
		ID:             "u_adminonly",
		Username:       "staff",
		PasswordHash:   string(hash),
		IsAdminCapable: true,
	}
	admin := &model.AdminProfile{IdentityID: identity.ID}
	require.NoError(t, ts.app.Storage.CreateIdentity(context.Background(), identity, nil, admin))

	rr := ts.loginAdmin("staff", "password1")
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.get("/quiz")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = ts.followToPage(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash", "Only players")
}

// CRUD tests

func TestAdminAddsQuestion(t *testing.T) {
	ts := newWebTestServer(t)
	loginAsAdmin(t, ts)

	rr := ts.get("/admin/questions/add")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.post("/admin/questions/add", questionForm("What is 2+2?", "4", "5", "", "", "A"))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin/questions", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash", "Question added")
	assertContainsText(t, doc, "table.question-list", "What is 2+2?")
}

func TestAddQuestionValidationErrors(t *testing.T) {
	ts := newWebTestServer(t)
	loginAsAdmin(t, ts)

	// Missing text
	rr := ts.post("/admin/questions/add", questionForm("", "4", "5", "", "", "A"))
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, `.field-error[data-field="text"]`)

	// Correct letter names a blank option
	rr = ts.post("/admin/questions/add", questionForm("q?", "4", "5", "", "", "C"))
	require.Equal(t, http.StatusOK, rr.Code)
	doc = parseHTML(rr.Body)
	assertContainsText(t, doc, `.field-error[data-field="correct"]`, "blank option")
}

func TestAdminEditsQuestion(t *testing.T) {
	ts := newWebTestServer(t)
	created := ts.seedQuestions(1)
	loginAsAdmin(t, ts)

	editPath := fmt.Sprintf("/admin/questions/edit/%d", created[0].ID)

	// The form is pre-filled
	rr := ts.get(editPath)
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	val, _ := doc.Find(`input[name="text"]`).Attr("value")
	assert.Equal(t, "Question 1?", val)

	rr = ts.post(editPath, questionForm("Revised question?", "yes", "no", "", "", "B"))
	require.Equal(t, http.StatusSeeOther, rr.Code)

	got, err := ts.app.QuestionService.Get(context.Background(), created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Revised question?", got.Text)
	assert.Equal(t, model.OptionLetterB, got.Correct)
}

func TestEditUnknownQuestionRedirectsWithFlash(t *testing.T) {
	ts := newWebTestServer(t)
	loginAsAdmin(t, ts)

	rr := ts.get("/admin/questions/edit/999")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin/questions", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash", "not found")
}

func TestAdminDeletesQuestion(t *testing.T) {
	ts := newWebTestServer(t)
	created := ts.seedQuestions(2)
	loginAsAdmin(t, ts)

	deletePath := fmt.Sprintf("/admin/questions/delete/%d", created[0].ID)

	// Confirmation page first
	rr := ts.get(deletePath)
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "body", "Are you sure")

	rr = ts.post(deletePath, url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	_, err := ts.app.QuestionService.Get(context.Background(), created[0].ID)
	assert.ErrorIs(t, err, model.ErrQuestionNotFound)

	// The survivor is untouched
	_, err = ts.app.QuestionService.Get(context.Background(), created[1].ID)
	assert.NoError(t, err)
}

// Pagination tests

func TestQuestionListPaginatesByThree(t *testing.T) {
	ts := newWebTestServer(t)
	ts.seedQuestions(7)
	loginAsAdmin(t, ts)

	rr := ts.get("/admin/questions")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assert.Equal(t, 3, doc.Find("tr[data-question-id]").Length())
	assertContainsText(t, doc, ".page-current", "Page 1 of 3")
	assertContainsElement(t, doc, ".page-next")
	assertNotContainsElement(t, doc, ".page-prev")

	rr = ts.get("/admin/questions?page=3")
	require.Equal(t, http.StatusOK, rr.Code)
	doc = parseHTML(rr.Body)
	assert.Equal(t, 1, doc.Find("tr[data-question-id]").Length())
	assertContainsElement(t, doc, ".page-prev")
	assertNotContainsElement(t, doc, ".page-next")
}

func TestQuestionListPastEndIsEmptyPage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.seedQuestions(2)
	loginAsAdmin(t, ts)

	rr := ts.get("/admin/questions?page=9")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assert.Equal(t, 0, doc.Find("tr[data-question-id]").Length())
	assertContainsText(t, doc, ".empty", "No questions on this page")
}

func TestAdminHomeShowsQuestionCount(t *testing.T) {
	ts := newWebTestServer(t)
	ts.seedQuestions(4)
	loginAsAdmin(t, ts)

	rr := ts.get("/admin/home")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "body", "4 questions")
}
