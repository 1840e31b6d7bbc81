// Package httphandler is the JSON API driving adapter.
package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/recipefinder/internal/application"
	"github.com/ericfisherdev/recipefinder/internal/domain/model"
)

// Handler is the HTTP driving adapter that serves the REST API.
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

// RegisterAPIRoutes registers the /api/v1 routes on mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/session", h.GetSession)

	guard := newCrossOriginGuard()
	mux.Handle("POST /api/v1/session/register", guard.Handler(http.HandlerFunc(h.Register)))
	mux.Handle("POST /api/v1/session/login", guard.Handler(http.HandlerFunc(h.Login)))
	mux.Handle("DELETE /api/v1/session", guard.Handler(http.HandlerFunc(h.Logout)))
	mux.Handle("POST /api/v1/recipes/search", guard.Handler(http.HandlerFunc(h.Search)))
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with the standard middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// GetSession returns the active session, or 401 when nobody is logged in.
func (h *Handler) GetSession(w http.ResponseWriter, _ *http.Request) {
	current := h.sessionSvc.Current()
	if current == nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{Email: current.Email})
}

// Register creates an identity and logs it in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	identity, err := h.sessionSvc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, SessionResponse{Email: identity.Email})
}

// Login starts a session for matching credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	identity, err := h.sessionSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{Email: identity.Email})
}

// Logout ends the active session. It succeeds when no session exists.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionSvc.Logout(r.Context()); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search runs a recipe query for the active session.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if !h.sessionSvc.IsAuthenticated() {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var req SearchRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	mode, ok := model.ParseSearchMode(req.Mode)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown search mode")
		return
	}

	recipes, err := h.recipeSvc.Find(r.Context(), mode, req.Query)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSearchResponse(mode, recipes))
}

// writeServiceError maps application errors to status codes. The body always
// carries the user-facing message.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *model.ValidationError
	var qe *model.QueryError

	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, model.ErrAlreadyExists):
		writeError(w, http.StatusConflict, model.UserMessage(err))
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, model.UserMessage(err))
	case errors.Is(err, application.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "search text is empty")
	case errors.Is(err, application.ErrUnknownSearchMode):
		writeError(w, http.StatusBadRequest, "unknown search mode")
	case errors.As(err, &qe):
		writeError(w, http.StatusBadGateway, qe.Message)
	default:
		h.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
