package workflow

import (
	"log/slog"
	"net/http"

	"github.com/mcggEz/gradalyze/internal/users"
	"github.com/mcggEz/gradalyze/pkg/handlers"
	"github.com/mcggEz/gradalyze/pkg/routes"
)

// Handler serves the derived workflow state.
type Handler struct {
	users  users.System
	logger *slog.Logger
}

// NewHandler creates a workflow Handler backed by the profile system.
func NewHandler(usersSys users.System, logger *slog.Logger) *Handler {
	return &Handler{
		users:  usersSys,
		logger: logger.With("handler", "workflow"),
	}
}

// Routes returns the route group definition for workflow endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/workflow",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.State},
		},
	}
}

// State fetches a fresh profile and derives the workflow stage from it. The
// adding_certificates query flag signals the certificate-upload detour from
// processing; it is a client intent, not a stored fact, so it rides on the
// request rather than the profile.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, users.ErrInvalidInput)
		return
	}

	u, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		handlers.RespondError(w, h.logger, users.MapHTTPStatus(err), err)
		return
	}

	state := Derive(u)
	if r.URL.Query().Get("adding_certificates") == "true" {
		state = state.WithCertificateIntent()
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}
