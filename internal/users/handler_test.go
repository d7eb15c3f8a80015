package users

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/internal/grades"
	"github.com/mcggEz/gradalyze/pkg/pagination"
)

type mockSystem struct {
	calls int

	uploadTranscriptFn   func(ctx context.Context, cmd UploadTranscriptCommand) (*TranscriptRef, error)
	uploadCertificatesFn func(ctx context.Context, email string, files []CertificateFile) ([]CertificateRef, error)
	addCertificateFn     func(ctx context.Context, email string, file CertificateFile) (*CertificateRef, error)
	deleteCertificateFn  func(ctx context.Context, email, path string) error
	extractGradesFn      func(ctx context.Context, email, storagePath string) (*GradeTable, error)
	gradesFn             func(ctx context.Context, email string) (*GradeTable, error)
	updateGradeCellFn    func(ctx context.Context, email string, id int64, field string, value any) (*GradeTable, error)
}

func (m *mockSystem) Handler(maxTranscriptSize, maxCertificateSize int64) *Handler {
	return nil
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error) {
	m.calls++
	result := pagination.NewPageResult([]User{}, 0, page.Page, page.PageSize)
	return &result, nil
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	m.calls++
	return nil, ErrNotFound
}

func (m *mockSystem) FindByEmail(ctx context.Context, email string) (*User, error) {
	m.calls++
	return nil, ErrNotFound
}

func (m *mockSystem) Create(ctx context.Context, cmd CreateCommand) (*User, error) {
	m.calls++
	return nil, nil
}

func (m *mockSystem) UploadTranscript(ctx context.Context, cmd UploadTranscriptCommand) (*TranscriptRef, error) {
	m.calls++
	if m.uploadTranscriptFn != nil {
		return m.uploadTranscriptFn(ctx, cmd)
	}
	return &TranscriptRef{StoragePath: "transcripts/test/tor.pdf"}, nil
}

func (m *mockSystem) DeleteTranscript(ctx context.Context, email string) error {
	m.calls++
	return nil
}

func (m *mockSystem) UploadCertificates(ctx context.Context, email string, files []CertificateFile) ([]CertificateRef, error) {
	m.calls++
	if m.uploadCertificatesFn != nil {
		return m.uploadCertificatesFn(ctx, email, files)
	}
	return nil, nil
}

func (m *mockSystem) AddCertificate(ctx context.Context, email string, file CertificateFile) (*CertificateRef, error) {
	m.calls++
	if m.addCertificateFn != nil {
		return m.addCertificateFn(ctx, email, file)
	}
	return &CertificateRef{}, nil
}

func (m *mockSystem) DeleteCertificate(ctx context.Context, email, path string) error {
	m.calls++
	if m.deleteCertificateFn != nil {
		return m.deleteCertificateFn(ctx, email, path)
	}
	return nil
}

func (m *mockSystem) ExtractGrades(ctx context.Context, email, storagePath string) (*GradeTable, error) {
	m.calls++
	if m.extractGradesFn != nil {
		return m.extractGradesFn(ctx, email, storagePath)
	}
	return buildGradeTable(nil), nil
}

func (m *mockSystem) Grades(ctx context.Context, email string) (*GradeTable, error) {
	m.calls++
	if m.gradesFn != nil {
		return m.gradesFn(ctx, email)
	}
	return buildGradeTable(nil), nil
}

func (m *mockSystem) UpdateGradeCell(ctx context.Context, email string, id int64, field string, value any) (*GradeTable, error) {
	m.calls++
	if m.updateGradeCellFn != nil {
		return m.updateGradeCellFn(ctx, email, id, field, value)
	}
	return buildGradeTable(nil), nil
}

func (m *mockSystem) AddGradeRow(ctx context.Context, email, semester string) (*GradeTable, error) {
	m.calls++
	return buildGradeTable(nil), nil
}

func (m *mockSystem) DeleteGradeRow(ctx context.Context, email string, id int64) (*GradeTable, error) {
	m.calls++
	return buildGradeTable(nil), nil
}

func (m *mockSystem) SaveGrades(ctx context.Context, email string, rows []grades.Row) (*GradeTable, error) {
	m.calls++
	return buildGradeTable(rows), nil
}

func (m *mockSystem) UpdateNotes(ctx context.Context, email, notes string) error {
	m.calls++
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupMux(sys System) *http.ServeMux {
	handler := NewHandler(
		sys,
		discardLogger(),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		10*1024*1024,
		5*1024*1024,
	)

	mux := http.NewServeMux()
	for _, route := range handler.Routes().Routes {
		pattern := route.Method + " /users" + route.Pattern
		if route.Pattern == "" {
			pattern = route.Method + " /users"
		}
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

type filePart struct {
	field       string
	filename    string
	contentType string
	size        int
}

func multipartBody(t *testing.T, email string, parts []filePart) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if email != "" {
		if err := writer.WriteField("email", email); err != nil {
			t.Fatal(err)
		}
	}

	for _, part := range parts {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{
			`form-data; name="` + part.field + `"; filename="` + part.filename + `"`,
		}
		header["Content-Type"] = []string{part.contentType}
		fw, err := writer.CreatePart(header)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(bytes.Repeat([]byte("a"), part.size)); err != nil {
			t.Fatal(err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadTranscriptValidation(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		part       filePart
		wantStatus int
		wantInBody string
	}{
		{
			name:       "rejects non-PDF before any side effect",
			email:      "student@plm.edu.ph",
			part:       filePart{field: "file", filename: "tor.docx", contentType: "application/msword", size: 100},
			wantStatus: http.StatusBadRequest,
			wantInBody: "transcript must be a PDF file",
		},
		{
			name:       "rejects oversized file citing the limit",
			email:      "student@plm.edu.ph",
			part:       filePart{field: "file", filename: "tor.pdf", contentType: "application/pdf", size: 12 * 1024 * 1024},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantInBody: "10 MB",
		},
		{
			name:       "rejects missing email",
			email:      "",
			part:       filePart{field: "file", filename: "tor.pdf", contentType: "application/pdf", size: 100},
			wantStatus: http.StatusBadRequest,
			wantInBody: "email is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sys := &mockSystem{}
			mux := setupMux(sys)

			body, contentType := multipartBody(t, tc.email, []filePart{tc.part})
			req := httptest.NewRequest("POST", "/users/upload-tor", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.wantInBody) {
				t.Errorf("expected body to contain %q, got %s", tc.wantInBody, rec.Body.String())
			}
			if sys.calls != 0 {
				t.Errorf("expected zero system calls, got %d", sys.calls)
			}
		})
	}
}

func TestUploadTranscript(t *testing.T) {
	sys := &mockSystem{
		uploadTranscriptFn: func(ctx context.Context, cmd UploadTranscriptCommand) (*TranscriptRef, error) {
			if cmd.Email != "student@plm.edu.ph" {
				t.Errorf("unexpected email %q", cmd.Email)
			}
			if cmd.ContentType != "application/pdf" {
				t.Errorf("unexpected content type %q", cmd.ContentType)
			}
			return &TranscriptRef{URL: "https://blob/transcripts/x/tor.pdf", StoragePath: "transcripts/x/tor.pdf", Name: cmd.Filename}, nil
		},
	}
	mux := setupMux(sys)

	body, contentType := multipartBody(t, "student@plm.edu.ph", []filePart{
		{field: "file", filename: "tor.pdf", contentType: "application/pdf", size: 2048},
	})
	req := httptest.NewRequest("POST", "/users/upload-tor", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "storage_path") {
		t.Errorf("expected storage_path in response, got %s", rec.Body.String())
	}
}

func TestUploadCertificatesBatch(t *testing.T) {
	t.Run("one invalid file rejects the whole batch before upload", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys)

		body, contentType := multipartBody(t, "student@plm.edu.ph", []filePart{
			{field: "files", filename: "cert1.pdf", contentType: "application/pdf", size: 100},
			{field: "files", filename: "cert2.exe", contentType: "application/octet-stream", size: 100},
		})
		req := httptest.NewRequest("POST", "/users/upload-certificates", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "cert2.exe") {
			t.Errorf("expected message naming the offending file, got %s", rec.Body.String())
		}
		if sys.calls != 0 {
			t.Errorf("expected zero system calls, got %d", sys.calls)
		}
	})

	t.Run("valid batch is forwarded intact", func(t *testing.T) {
		sys := &mockSystem{
			uploadCertificatesFn: func(ctx context.Context, email string, files []CertificateFile) ([]CertificateRef, error) {
				if len(files) != 2 {
					t.Errorf("expected 2 files, got %d", len(files))
				}
				return []CertificateRef{{Name: files[0].Filename}, {Name: files[1].Filename}}, nil
			},
		}
		mux := setupMux(sys)

		body, contentType := multipartBody(t, "student@plm.edu.ph", []filePart{
			{field: "files", filename: "cert1.pdf", contentType: "application/pdf", size: 100},
			{field: "files", filename: "cert2.png", contentType: "image/png", size: 100},
		})
		req := httptest.NewRequest("POST", "/users/upload-certificates", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestDeleteCertificate(t *testing.T) {
	t.Run("accepts certificate_url as identifier", func(t *testing.T) {
		var gotPath string
		sys := &mockSystem{
			deleteCertificateFn: func(ctx context.Context, email, path string) error {
				gotPath = path
				return nil
			},
		}
		mux := setupMux(sys)

		req := httptest.NewRequest("DELETE", "/users/certificates",
			strings.NewReader(`{"email":"student@plm.edu.ph","certificate_url":"https://blob/certificates/a/x.pdf"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if gotPath != "https://blob/certificates/a/x.pdf" {
			t.Errorf("unexpected path %q", gotPath)
		}
	})

	t.Run("rejects missing identifier", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys)

		req := httptest.NewRequest("DELETE", "/users/certificates",
			strings.NewReader(`{"email":"student@plm.edu.ph"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if sys.calls != 0 {
			t.Errorf("expected zero system calls, got %d", sys.calls)
		}
	})
}

func TestExtractGrades(t *testing.T) {
	t.Run("engine failures surface as bad gateway", func(t *testing.T) {
		sys := &mockSystem{
			extractGradesFn: func(ctx context.Context, email, storagePath string) (*GradeTable, error) {
				return nil, &engine.Error{StatusCode: 500, Message: "ocr failed"}
			},
		}
		mux := setupMux(sys)

		req := httptest.NewRequest("POST", "/users/extract-grades",
			strings.NewReader(`{"email":"student@plm.edu.ph"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "ocr failed") {
			t.Errorf("expected engine message in body, got %s", rec.Body.String())
		}
	})

	t.Run("requires email", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys)

		req := httptest.NewRequest("POST", "/users/extract-grades", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if sys.calls != 0 {
			t.Errorf("expected zero system calls, got %d", sys.calls)
		}
	})
}

func TestUploadProgressLogger(t *testing.T) {
	var buf bytes.Buffer
	r := &repo{logger: slog.New(slog.NewTextHandler(&buf, nil))}

	report := r.uploadProgressLogger("student@plm.edu.ph", "tor.pdf")
	for _, percent := range []int{10, 24, 25, 26, 60, 100} {
		report(percent)
	}

	logged := buf.String()
	for _, milestone := range []string{"percent=25", "percent=50", "percent=75", "percent=100"} {
		if !strings.Contains(logged, milestone) {
			t.Errorf("expected %s in log output, got %s", milestone, logged)
		}
	}
	if n := strings.Count(logged, "transcript upload progress"); n != 4 {
		t.Errorf("expected 4 milestone lines, got %d", n)
	}
}

func TestUpdateGradeCell(t *testing.T) {
	sys := &mockSystem{
		updateGradeCellFn: func(ctx context.Context, email string, id int64, field string, value any) (*GradeTable, error) {
			if field != "grade" {
				t.Errorf("unexpected field %q", field)
			}
			return buildGradeTable([]grades.Row{{ID: id}}), nil
		},
	}
	mux := setupMux(sys)

	req := httptest.NewRequest("PATCH", "/users/grades/cell",
		strings.NewReader(`{"email":"student@plm.edu.ph","id":3,"field":"grade","value":1.25}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
