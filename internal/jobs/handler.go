package jobs

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/pkg/handlers"
	"github.com/mcggEz/gradalyze/pkg/pagination"
	"github.com/mcggEz/gradalyze/pkg/routes"
)

// Handler provides HTTP endpoints for job operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination
// config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "jobs"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for job endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/jobs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "POST", Pattern: "/scrape", Handler: h.Scrape},
		},
	}
}

// List returns a page of job postings. The browser client paginates with
// limit/offset, which normalizes into the page request.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromLimitOffset(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single job by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	job, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, job)
}

// Create ingests a job posting.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[CreateCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	job, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, job)
}

type scrapeRequest struct {
	Source string `json:"source"`
}

// Scrape queues a corpus refresh.
func (h *Handler) Scrape(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[scrapeRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}
	if req.Source == "" {
		req.Source = "default"
	}

	receipt, err := h.sys.RequestScrape(r.Context(), req.Source)
	if err != nil {
		handlers.RespondError(w, h.logger, scrapeStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, receipt)
}

func scrapeStatus(err error) int {
	if status := MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return engine.MapHTTPStatus(err)
}
