package web_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizhall/quizhall/internal/model"
)

func TestQuizShowsFirstFiveQuestions(t *testing.T) {
	ts := newWebTestServer(t)
	created := ts.seedQuestions(7)
	ts.registerPlayer("alice", "password1", "Alice")
	ts.loginPlayer("alice", "password1")

	rr := ts.get("/quiz")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 5, doc.Find("fieldset.question").Length())

	// The sixth question never appears
	for i, q := range created {
		selector := fmt.Sprintf(`fieldset[data-question-id="%d"]`, q.ID)
		if i < 5 {
			assertContainsElement(t, doc, selector)
		} else {
			assertNotContainsElement(t, doc, selector)
		}
	}
}

func TestQuizWithEmptyBankShowsNotice(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerPlayer("alice", "password1", "Alice")
	ts.loginPlayer("alice", "password1")

	rr := ts.get("/quiz")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".empty", "No questions")
	assertNotContainsElement(t, doc, "fieldset.question")
}

func TestSubmitPerfectQuiz(t *testing.T) {
	ts := newWebTestServer(t)
	created := ts.seedQuestions(5)
	ts.registerPlayer("alice", "password1", "Alice")
	ts.loginPlayer("alice", "password1")

	form := url.Values{}
	for _, q := range created {
		form.Set(fmt.Sprintf("q%d", q.ID), model.OptionLetterA)
	}

	rr := ts.post("/quiz", form)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".score", "5")
	assertContainsText(t, doc, ".percentage", "100.00%")
}

func TestSubmitPartialQuiz(t *testing.T) {
	ts := newWebTestServer(t)
	created := ts.seedQuestions(5)
	ts.registerPlayer("alice", "password1", "Alice")
	ts.loginPlayer("alice", "password1")

	// Two right, one wrong, two unanswered
	form := url.Values{}
	form.Set(fmt.Sprintf("q%d", created[0].ID), model.OptionLetterA)
	form.Set(fmt.Sprintf("q%d", created[1].ID), model.OptionLetterA)
	form.Set(fmt.Sprintf("q%d", created[2].ID), model.OptionLetterB)

	rr := ts.post("/quiz", form)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".percentage", "40.00%")
	assertContainsText(t, doc, ".breakdown", "Attempted: 3")
	assertContainsText(t, doc, ".breakdown", "not attempted: 2")
}

func TestSubmitEmptyBankScoresZero(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerPlayer("alice", "password1", "Alice")
	ts.loginPlayer("alice", "password1")

	rr := ts.post("/quiz", url.Values{})
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".percentage", "0.00%")
}

func TestProvisionedAdminCanTakeQuiz(t *testing.T) {
	ts := newWebTestServer(t)
	ts.seedQuestions(5)

	_, err := ts.app.AuthService.ProvisionAdmin(context.Background(), "root", "root@example.com", "password1", "")
	require.NoError(t, err)

	ts.loginAdmin("root", "password1")

	// Admins provisioned through the service hold a player profile, so
	// the quiz is reachable
	rr := ts.get("/quiz")
	assert.Equal(t, http.StatusOK, rr.Code)
}

// Full journey: register, log in, take the quiz, score 100%
func TestEndToEndPlayerJourney(t *testing.T) {
	ts := newWebTestServer(t)
	created := ts.seedQuestions(5)

	ts.registerPlayer("alice", "password1", "Alice")

	rr := ts.loginPlayer("alice", "password1")
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.get("/quiz")
	require.Equal(t, http.StatusOK, rr.Code)

	form := url.Values{}
	for _, q := range created {
		form.Set(fmt.Sprintf("q%d", q.ID), q.Correct)
	}
	rr = ts.post("/quiz", form)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".percentage", "100.00%")
}
