package analysis

import (
	"log/slog"
	"net/http"

	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/internal/users"
	"github.com/mcggEz/gradalyze/pkg/handlers"
	"github.com/mcggEz/gradalyze/pkg/routes"
)

// Handler provides HTTP endpoints for analysis operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "analysis"),
	}
}

// Routes returns the route group definition for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analysis",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/companies-for-user", Handler: h.CompaniesForUser},
			{Method: "POST", Pattern: "/dev-compute-archetype", Handler: h.ComputeArchetype},
			{Method: "POST", Pattern: "/complete-recommendations", Handler: h.CompleteRecommendations},
		},
	}
}

// CompaniesForUser returns employer matches for the email query parameter.
func (h *Handler) CompaniesForUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	companies, err := h.sys.CompaniesForUser(r.Context(), email)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

type emailRequest struct {
	Email string `json:"email"`
}

// ComputeArchetype runs clustering for the user and returns the updated
// profile.
func (h *Handler) ComputeArchetype(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[emailRequest](r)
	if err != nil || req.Email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	user, err := h.sys.ComputeArchetype(r.Context(), req.Email)
	if err != nil {
		handlers.RespondError(w, h.logger, analysisStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

// CompleteRecommendations finalizes career recommendations for the user.
func (h *Handler) CompleteRecommendations(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[emailRequest](r)
	if err != nil || req.Email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	result, err := h.sys.CompleteRecommendations(r.Context(), req.Email)
	if err != nil {
		handlers.RespondError(w, h.logger, analysisStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func analysisStatus(err error) int {
	if status := users.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	if status := MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return engine.MapHTTPStatus(err)
}
