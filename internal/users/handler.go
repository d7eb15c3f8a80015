package users

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/internal/grades"
	"github.com/mcggEz/gradalyze/pkg/handlers"
	"github.com/mcggEz/gradalyze/pkg/pagination"
	"github.com/mcggEz/gradalyze/pkg/routes"
)

// Handler provides HTTP endpoints for profile operations.
type Handler struct {
	sys                System
	logger             *slog.Logger
	pagination         pagination.Config
	maxTranscriptSize  int64
	maxCertificateSize int64
}

// NewHandler creates a Handler with the given system, logger, pagination
// config, and per-kind upload size limits.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxTranscriptSize int64,
	maxCertificateSize int64,
) *Handler {
	return &Handler{
		sys:                sys,
		logger:             logger.With("handler", "users"),
		pagination:         pagination,
		maxTranscriptSize:  maxTranscriptSize,
		maxCertificateSize: maxCertificateSize,
	}
}

// Routes returns the route group definition for profile endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/users",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/upload-tor", Handler: h.UploadTranscript},
			{Method: "DELETE", Pattern: "/upload-tor", Handler: h.DeleteTranscript},
			{Method: "POST", Pattern: "/upload-certificates", Handler: h.UploadCertificates},
			{Method: "POST", Pattern: "/upload-certificate", Handler: h.AddCertificate},
			{Method: "DELETE", Pattern: "/certificates", Handler: h.DeleteCertificate},
			{Method: "POST", Pattern: "/extract-grades", Handler: h.ExtractGrades},
			{Method: "GET", Pattern: "/grades", Handler: h.Grades},
			{Method: "PUT", Pattern: "/grades", Handler: h.SaveGrades},
			{Method: "PATCH", Pattern: "/grades/cell", Handler: h.UpdateGradeCell},
			{Method: "POST", Pattern: "/grades/rows", Handler: h.AddGradeRow},
			{Method: "DELETE", Pattern: "/grades/rows", Handler: h.DeleteGradeRow},
			{Method: "PATCH", Pattern: "/notes", Handler: h.UpdateNotes},
		},
	}
}

// List returns a paginated list of profiles with optional query filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single profile by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	user, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

// UploadTranscript accepts a multipart transcript upload. Validation runs
// before anything is stored; a rejected file causes no storage or database
// activity.
func (h *Handler) UploadTranscript(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	email := r.FormValue("email")
	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}
	defer file.Close()

	contentType := headerContentType(header)
	if err := ValidateTranscript(email, header.Size, contentType, h.maxTranscriptSize); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	cmd := UploadTranscriptCommand{
		Email:       email,
		Data:        data,
		Filename:    header.Filename,
		ContentType: contentType,
		PageCount:   extractPDFPageCount(h.logger, data, contentType),
	}

	ref, err := h.sys.UploadTranscript(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, ref)
}

// DeleteTranscript removes the stored transcript for the email query
// parameter.
func (h *Handler) DeleteTranscript(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	if err := h.sys.DeleteTranscript(r.Context(), email); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadCertificates accepts a multipart batch in the `files` field and
// persists it all-or-nothing: every file must pass validation before any is
// stored, and a storage failure rolls back the whole batch.
func (h *Handler) UploadCertificates(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	email := r.FormValue("email")
	headers := multipartFiles(r, "files")
	if len(headers) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	for _, header := range headers {
		if err := ValidateCertificate(email, header.Filename, header.Size, headerContentType(header), h.maxCertificateSize); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
	}

	files := make([]CertificateFile, 0, len(headers))
	for _, header := range headers {
		file, err := readMultipartFile(header)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
			return
		}
		files = append(files, file)
	}

	refs, err := h.sys.UploadCertificates(r.Context(), email, files)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, map[string]any{"certificates": refs})
}

// AddCertificate accepts a single multipart certificate in the `file` field.
// Callers iterating files through this endpoint get best-effort semantics: a
// failure leaves previously uploaded files in place.
func (h *Handler) AddCertificate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	email := r.FormValue("email")
	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}
	defer file.Close()

	contentType := headerContentType(header)
	if err := ValidateCertificate(email, header.Filename, header.Size, contentType, h.maxCertificateSize); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	ref, err := h.sys.AddCertificate(r.Context(), email, CertificateFile{
		Data:        data,
		Filename:    header.Filename,
		ContentType: contentType,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, ref)
}

type deleteCertificateRequest struct {
	Email           string `json:"email"`
	CertificateURL  string `json:"certificate_url"`
	CertificatePath string `json:"certificate_path"`
}

// DeleteCertificate removes one certificate identified by storage path or
// URL.
func (h *Handler) DeleteCertificate(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[deleteCertificateRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	target := req.CertificatePath
	if target == "" {
		target = req.CertificateURL
	}
	if req.Email == "" || target == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	if err := h.sys.DeleteCertificate(r.Context(), req.Email, target); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type extractGradesRequest struct {
	Email       string `json:"email"`
	StoragePath string `json:"storage_path"`
}

// ExtractGrades submits the stored transcript to the analysis engine and
// returns the reconciled grade table.
func (h *Handler) ExtractGrades(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[extractGradesRequest](r)
	if err != nil || req.Email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	table, err := h.sys.ExtractGrades(r.Context(), req.Email, req.StoragePath)
	if err != nil {
		handlers.RespondError(w, h.logger, engineAwareStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, table)
}

// Grades returns the current grade table for the email query parameter.
func (h *Handler) Grades(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	table, err := h.sys.Grades(r.Context(), email)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, table)
}

type saveGradesRequest struct {
	Email string       `json:"email"`
	Rows  []grades.Row `json:"rows"`
}

// SaveGrades replaces the stored grade rows with the submitted set.
func (h *Handler) SaveGrades(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[saveGradesRequest](r)
	if err != nil || req.Email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	table, err := h.sys.SaveGrades(r.Context(), req.Email, req.Rows)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, table)
}

type updateCellRequest struct {
	Email string `json:"email"`
	ID    int64  `json:"id"`
	Field string `json:"field"`
	Value any    `json:"value"`
}

// UpdateGradeCell applies a single-cell edit to the stored grade table.
func (h *Handler) UpdateGradeCell(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[updateCellRequest](r)
	if err != nil || req.Email == "" || req.Field == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	table, err := h.sys.UpdateGradeCell(r.Context(), req.Email, req.ID, req.Field, req.Value)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, table)
}

type addRowRequest struct {
	Email    string `json:"email"`
	Semester string `json:"semester"`
}

// AddGradeRow appends a placeholder row to the named semester.
func (h *Handler) AddGradeRow(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[addRowRequest](r)
	if err != nil || req.Email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	table, err := h.sys.AddGradeRow(r.Context(), req.Email, req.Semester)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, table)
}

type deleteRowRequest struct {
	Email string `json:"email"`
	ID    int64  `json:"id"`
}

// DeleteGradeRow removes a row from the stored grade table.
func (h *Handler) DeleteGradeRow(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[deleteRowRequest](r)
	if err != nil || req.Email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	table, err := h.sys.DeleteGradeRow(r.Context(), req.Email, req.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, table)
}

type updateNotesRequest struct {
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// UpdateNotes records reviewer notes against a transcript.
func (h *Handler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[updateNotesRequest](r)
	if err != nil || req.Email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	if err := h.sys.UpdateNotes(r.Context(), req.Email, req.Notes); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func engineAwareStatus(err error) int {
	if status := MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return engine.MapHTTPStatus(err)
}

func multipartFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		headers = r.MultipartForm.File[field+"[]"]
	}
	return headers
}

func readMultipartFile(header *multipart.FileHeader) (CertificateFile, error) {
	file, err := header.Open()
	if err != nil {
		return CertificateFile{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return CertificateFile{}, err
	}

	return CertificateFile{
		Data:        data,
		Filename:    header.Filename,
		ContentType: headerContentType(header),
	}, nil
}

func headerContentType(header *multipart.FileHeader) string {
	ct := strings.TrimSpace(header.Header.Get("Content-Type"))
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

func extractPDFPageCount(logger *slog.Logger, data []byte, contentType string) *int {
	if contentType != "application/pdf" {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}

	return &count
}
