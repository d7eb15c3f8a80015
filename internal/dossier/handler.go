package dossier

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mcggEz/gradalyze/pkg/handlers"
	"github.com/mcggEz/gradalyze/pkg/routes"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler provides HTTP endpoints for dossier operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "dossier"),
	}
}

// Routes returns the route group definition for dossier endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/dossier",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Build},
			{Method: "GET", Pattern: "/export", Handler: h.Export},
		},
	}
}

// Build returns the aggregated dossier for the email query parameter.
func (h *Handler) Build(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	d, err := h.sys.Build(r.Context(), email)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, d)
}

// Export streams the dossier as a spreadsheet download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	data, filename, err := h.sys.ExportExcel(r.Context(), email)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("dossier download interrupted", "error", err)
	}
}
