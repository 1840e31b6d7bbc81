// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/recipefinder/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/recipefinder/internal/adapter/driving/web/templates/pages"
	"github.com/ericfisherdev/recipefinder/internal/application"
	"github.com/ericfisherdev/recipefinder/internal/domain/model"
)

const pageTitle = "Recipe Finder"

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	sessionSvc *application.SessionService
	recipeSvc  *application.RecipeService
	logger     *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	sessionSvc *application.SessionService,
	recipeSvc *application.RecipeService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		sessionSvc: sessionSvc,
		recipeSvc:  recipeSvc,
		logger:     logger,
	}
}

// Index renders the finder when a session is active and the login form
// otherwise. ?mode= selects the search tab.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	token := csrfToken(w, r)

	current := h.sessionSvc.Current()
	if current == nil {
		h.render(w, r, http.StatusOK, pages.AuthPage(toAuthPageViewModel(true, "", "", token)))
		return
	}

	mode, ok := model.ParseSearchMode(r.URL.Query().Get("mode"))
	if !ok {
		mode = model.SearchModeIngredients
	}

	h.render(w, r, http.StatusOK, pages.FinderPage(toFinderPageViewModel(current.Email, token, mode)))
}

// LoginPage renders an empty login form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.authPage(w, r, true)
}

// RegisterPage renders an empty registration form.
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.authPage(w, r, false)
}

func (h *Handler) authPage(w http.ResponseWriter, r *http.Request, isLogin bool) {
	if h.sessionSvc.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	token := csrfToken(w, r)
	h.render(w, r, http.StatusOK, pages.AuthPage(toAuthPageViewModel(isLogin, "", "", token)))
}

// Login handles the login form post.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.submitAuth(w, r, true)
}

// Register handles the registration form post. A new identity is logged in
// immediately.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	h.submitAuth(w, r, false)
}

func (h *Handler) submitAuth(w http.ResponseWriter, r *http.Request, isLogin bool) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	var err error
	if isLogin {
		_, err = h.sessionSvc.Login(r.Context(), email, password)
	} else {
		_, err = h.sessionSvc.Register(r.Context(), email, password)
	}
	if err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	status := authErrorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("authentication failed", "login", isLogin, "error", err)
	}

	token := csrfToken(w, r)
	page := toAuthPageViewModel(isLogin, email, model.UserMessage(err), token)
	h.render(w, r, status, pages.AuthPage(page))
}

// Logout ends the session and returns to the login form.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	if err := h.sessionSvc.Logout(r.Context()); err != nil {
		h.logger.Error("failed to log out", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Search runs the search for the posted tab and renders the result state.
// Blank text leaves the page in its welcome state without a model call.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	current := h.sessionSvc.Current()
	if current == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	mode, ok := model.ParseSearchMode(r.FormValue("mode"))
	if !ok {
		http.Error(w, "unknown search mode", http.StatusBadRequest)
		return
	}

	query := r.FormValue("query")
	page := toFinderPageViewModel(current.Email, csrfToken(w, r), mode)
	page.Query = query

	recipes, err := h.recipeSvc.Find(r.Context(), mode, query)
	switch {
	case errors.Is(err, application.ErrEmptyQuery):
		h.render(w, r, http.StatusOK, pages.FinderPage(page))
	case err != nil:
		status := http.StatusBadGateway
		var qe *model.QueryError
		if !errors.As(err, &qe) {
			status = http.StatusInternalServerError
			h.logger.Error("search failed", "mode", mode, "error", err)
		}
		page.Searched = true
		page.Error = model.UserMessage(err)
		h.render(w, r, status, pages.FinderPage(page))
	default:
		page.Searched = true
		page.Recipes = toRecipeCardViewModels(recipes, pantryFor(mode, query))
		h.render(w, r, http.StatusOK, pages.FinderPage(page))
	}
}

// render writes body inside the page layout. Output is buffered so a render
// failure can still produce a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, body templ.Component) {
	var buf bytes.Buffer
	if err := templates.Layout(pageTitle, body).Render(r.Context(), &buf); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func authErrorStatus(err error) int {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
