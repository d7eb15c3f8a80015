package auth

import (
	"log/slog"
	"net/http"

	"github.com/mcggEz/gradalyze/pkg/handlers"
	"github.com/mcggEz/gradalyze/pkg/routes"
)

// Handler provides HTTP endpoints for authentication.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "auth"),
	}
}

// Routes returns the route group definition for auth endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/auth",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/register", Handler: h.Register},
			{Method: "POST", Pattern: "/login", Handler: h.Login},
			{Method: "GET", Pattern: "/profile-by-email", Handler: h.ProfileByEmail},
		},
	}
}

// Register creates an account and returns a session.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[RegisterCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingFields)
		return
	}

	session, err := h.sys.Register(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, session)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates credentials and returns a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[loginRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidCredentials)
		return
	}

	session, err := h.sys.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// ProfileByEmail returns the profile for the email query parameter.
func (h *Handler) ProfileByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingFields)
		return
	}

	user, err := h.sys.ProfileByEmail(r.Context(), email)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}
