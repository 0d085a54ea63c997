package web_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/quizhall/quizhall/internal/factory"
	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.App
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := web.NewRouter(web.RouterConfig{
		Logger:          logger,
		Storage:         app.Storage,
		AuthService:     app.AuthService,
		RoleResolver:    app.RoleResolver,
		QuestionService: app.QuestionService,
		ScoringService:  app.ScoringService,
		StaticDir:       "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies["session"]
	return ok
}

// Helper functions for common test operations

// registerPlayer registers a player through the web form
func (ts *webTestServer) registerPlayer(username, password, displayName string) {
	ts.t.Helper()
	form := url.Values{
		"username":         {username},
		"email":            {username + "@example.com"},
		"display_name":     {displayName},
		"password":         {password},
		"password_confirm": {password},
	}
	rr := ts.post("/player/register", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after registration")
	require.Equal(ts.t, "/player/login", rr.Header().Get("Location"))
}

// loginPlayer logs in through the player login form
func (ts *webTestServer) loginPlayer(username, password string) *httptest.ResponseRecorder {
	ts.t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	return ts.post("/player/login", form)
}

// loginAdmin logs in through the admin login form
func (ts *webTestServer) loginAdmin(username, password string) *httptest.ResponseRecorder {
	ts.t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	return ts.post("/admin/login", form)
}

// provisionAdmin creates an admin account directly via the auth service
func (ts *webTestServer) provisionAdmin(username, password string) {
	ts.t.Helper()
	_, err := ts.app.AuthService.ProvisionAdmin(context.Background(), username, username+"@example.com", password, "")
	require.NoError(ts.t, err)
}

// seedQuestions creates n questions directly via the question service
func (ts *webTestServer) seedQuestions(n int) []*model.Question {
	ts.t.Helper()
	created := make([]*model.Question, 0, n)
	for i := 1; i <= n; i++ {
		q, err := ts.app.QuestionService.Create(context.Background(), &model.Question{
			Text:    fmt.Sprintf("Question %d?", i),
			OptionA: "right",
			OptionB: "wrong",
			Correct: model.OptionLetterA,
		})
		require.NoError(ts.t, err)
		created = append(created, q)
	}
	return created
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// followToPage follows redirects until a non-redirect response
func (ts *webTestServer) followToPage(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	for i := 0; i < 5 && rr.Code == http.StatusSeeOther; i++ {
		rr = ts.followRedirect(rr)
	}
	require.Equal(ts.t, http.StatusOK, rr.Code, "Expected to land on a page")
	return rr
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
