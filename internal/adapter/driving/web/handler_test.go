package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/recipefinder/internal/application"
	"github.com/ericfisherdev/recipefinder/internal/domain/model"
)

// --- Mock implementations ---

type mockCredentialStore struct {
	users map[string]string
}

func (m *mockCredentialStore) Insert(_ context.Context, identity model.Identity) error {
	if _, ok := m.users[identity.Email]; ok {
		return model.ErrAlreadyExists
	}
	m.users[identity.Email] = identity.Secret
	return nil
}

func (m *mockCredentialStore) Verify(_ context.Context, email, secret string) (bool, error) {
	stored, ok := m.users[email]
	return ok && stored == secret, nil
}

func (m *mockCredentialStore) Exists(_ context.Context, email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}

type mockSessionStore struct {
	email string
}

func (m *mockSessionStore) Load(_ context.Context) (string, error) { return m.email, nil }

func (m *mockSessionStore) Save(_ context.Context, email string) error {
	m.email = email
	return nil
}

func (m *mockSessionStore) Clear(_ context.Context) error {
	m.email = ""
	return nil
}

type mockRecipeModel struct {
	reply string
	err   error
	calls int
}

func (m *mockRecipeModel) Generate(_ context.Context, _ string, _ *model.Schema) (string, error) {
	m.calls++
	return m.reply, m.err
}

// --- Test helpers ---

const testCSRF = "test-csrf-token"

type testEnv struct {
	mux      *http.ServeMux
	sessions *mockSessionStore
	model    *mockRecipeModel
	svc      *application.SessionService
}

func setupWeb(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		sessions: &mockSessionStore{},
		model: &mockRecipeModel{reply: `[{"recipeName":"Pancakes","description":"Fluffy **stack**",` +
			`"prepTime":"20 minutes","ingredients":["2 Eggs","1 cup flour","1 tbsp sugar"],"instructions":["Whisk","Fry"]}]`},
	}
	creds := &mockCredentialStore{users: map[string]string{"cook@example.com": "secret1"}}
	env.svc = application.NewSessionService(creds, env.sessions, true, slog.Default())
	recipeSvc := application.NewRecipeService(env.model, slog.Default())

	env.mux = http.NewServeMux()
	RegisterRoutes(env.mux, NewHandler(env.svc, recipeSvc, slog.Default()))
	return env
}

func (e *testEnv) loginDirect(t *testing.T) {
	t.Helper()
	_, err := e.svc.Login(context.Background(), "cook@example.com", "secret1")
	require.NoError(t, err)
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

// post submits a form carrying a valid CSRF cookie and field unless csrf is
// false.
func (e *testEnv) post(path string, form url.Values, csrf bool) *httptest.ResponseRecorder {
	if csrf {
		form.Set(csrfFormField, testCSRF)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRF})

	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestIndex_ShowsLoginWithoutSession(t *testing.T) {
	env := setupWeb(t)

	rec := env.get("/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, "Log in to find delicious recipes.")
	assert.NotEmpty(t, rec.Result().Cookies(), "csrf cookie is issued")
}

func TestIndex_ShowsFinderWithSession(t *testing.T) {
	env := setupWeb(t)
	env.loginDirect(t)

	rec := env.get("/")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "cook@example.com")
	assert.Contains(t, body, "<textarea")
	assert.Contains(t, body, "Welcome to Recipe Finder!")
}

func TestIndex_ModeTab(t *testing.T) {
	env := setupWeb(t)
	env.loginDirect(t)

	rec := env.get("/?mode=name")

	body := rec.Body.String()
	assert.NotContains(t, body, "<textarea")
	assert.Contains(t, body, `placeholder="Which recipe would you like to find?"`)
	assert.Contains(t, body, `<a class="tab active" href="/?mode=name">`)
}

func TestAuthPages(t *testing.T) {
	env := setupWeb(t)

	rec := env.get("/register")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/register"`)
	assert.Contains(t, rec.Body.String(), `href="/login"`)

	env.loginDirect(t)
	rec = env.get("/login")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		wantStatus int
		wantBody   string
	}{
		{name: "success", email: "cook@example.com", password: "secret1", wantStatus: http.StatusSeeOther},
		{name: "wrong password", email: "cook@example.com", password: "secret9", wantStatus: http.StatusUnauthorized, wantBody: "Incorrect email or password."},
		{name: "missing fields", email: "", password: "", wantStatus: http.StatusBadRequest, wantBody: application.MsgMissingFields},
		{name: "invalid email", email: "cook", password: "secret1", wantStatus: http.StatusBadRequest, wantBody: application.MsgInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupWeb(t)

			rec := env.post("/login", url.Values{"email": {tt.email}, "password": {tt.password}}, true)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody == "" {
				assert.Equal(t, "/", rec.Header().Get("Location"))
				assert.Equal(t, "cook@example.com", env.sessions.email)
				return
			}
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Empty(t, env.sessions.email)
			if tt.password != "" {
				assert.NotContains(t, rec.Body.String(), tt.password, "password is never echoed")
			}
		})
	}
}

func TestLogin_KeepsEmailOnFailure(t *testing.T) {
	env := setupWeb(t)

	rec := env.post("/login", url.Values{"email": {"cook@example.com"}, "password": {"nope123"}}, true)

	assert.Contains(t, rec.Body.String(), `value="cook@example.com"`)
}

func TestRegister_LogsIn(t *testing.T) {
	env := setupWeb(t)

	rec := env.post("/register", url.Values{"email": {"new@example.com"}, "password": {"abcdef"}}, true)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "new@example.com", env.sessions.email)
	require.NotNil(t, env.svc.Current())
	assert.Equal(t, "new@example.com", env.svc.Current().Email)
}

func TestRegister_Duplicate(t *testing.T) {
	env := setupWeb(t)

	rec := env.post("/register", url.Values{"email": {"cook@example.com"}, "password": {"abcdef"}}, true)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "This email is already registered. Try logging in.")
}

func TestPosts_RejectMissingCSRF(t *testing.T) {
	for _, path := range []string{"/login", "/register", "/logout", "/search"} {
		t.Run(path, func(t *testing.T) {
			env := setupWeb(t)

			rec := env.post(path, url.Values{"email": {"cook@example.com"}, "password": {"secret1"}}, false)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Empty(t, env.sessions.email)
		})
	}
}

func TestLogout(t *testing.T) {
	env := setupWeb(t)
	env.loginDirect(t)

	rec := env.post("/logout", url.Values{}, true)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, env.sessions.email)
	assert.Nil(t, env.svc.Current())
}

func TestSearch_RequiresSession(t *testing.T) {
	env := setupWeb(t)

	rec := env.post("/search", url.Values{"query": {"eggs"}}, true)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Zero(t, env.model.calls)
}

func TestSearch_RendersCardsWithPantry(t *testing.T) {
	env := setupWeb(t)
	env.loginDirect(t)

	rec := env.post("/search", url.Values{"mode": {"ingredients"}, "query": {"eggs, flour, milk"}}, true)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h2>Pancakes</h2>")
	assert.Contains(t, body, "<strong>stack</strong>")
	assert.Contains(t, body, `<li class="owned">2 Eggs</li>`)
	assert.Contains(t, body, `<li class="owned">1 cup flour</li>`)
	assert.Contains(t, body, `<li>1 tbsp sugar</li>`)
	assert.Contains(t, body, "2 on hand")
	assert.Contains(t, body, "eggs, flour, milk</textarea>")
	assert.Equal(t, 1, env.model.calls)
}

func TestSearch_ByNameHasNoPantry(t *testing.T) {
	env := setupWeb(t)
	env.loginDirect(t)

	rec := env.post("/search", url.Values{"mode": {"name"}, "query": {"eggs"}}, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `class="owned"`)
}

func TestSearch_BlankIsNoOp(t *testing.T) {
	env := setupWeb(t)
	env.loginDirect(t)

	rec := env.post("/search", url.Values{"query": {"   "}}, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome to Recipe Finder!")
	assert.Zero(t, env.model.calls)
}

func TestSearch_EmptyResult(t *testing.T) {
	env := setupWeb(t)
	env.model.reply = `[]`
	env.loginDirect(t)

	rec := env.post("/search", url.Values{"query": {"gravel"}}, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), EmptyResultMessage)
}

func TestSearch_UpstreamFailure(t *testing.T) {
	env := setupWeb(t)
	env.model.err = errors.New("timeout")
	env.loginDirect(t)

	rec := env.post("/search", url.Values{"query": {"eggs"}}, true)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), model.MsgUpstreamFailure)
	assert.NotContains(t, rec.Body.String(), "Welcome to Recipe Finder!")
}

func TestSearch_UnknownMode(t *testing.T) {
	env := setupWeb(t)
	env.loginDirect(t)

	rec := env.post("/search", url.Values{"mode": {"cuisine"}, "query": {"thai"}}, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, env.model.calls)
}

func TestStaticAssets(t *testing.T) {
	env := setupWeb(t)

	rec := env.get("/static/app.js")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data-search-form")
}
