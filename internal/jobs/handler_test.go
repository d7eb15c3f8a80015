package jobs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/pkg/pagination"
)

type mockSystem struct {
	listFn   func(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Job], error)
	scrapeFn func(ctx context.Context, source string) (*ScrapeReceipt, error)
}

func (m *mockSystem) Handler() *Handler {
	return nil
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Job], error) {
	if m.listFn != nil {
		return m.listFn(ctx, page, filters)
	}
	result := pagination.NewPageResult([]Job{}, 0, page.Page, page.PageSize)
	return &result, nil
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*Job, error) {
	return nil, ErrNotFound
}

func (m *mockSystem) Create(ctx context.Context, cmd CreateCommand) (*Job, error) {
	return &Job{ID: uuid.New(), Title: cmd.Title, Company: cmd.Company}, nil
}

func (m *mockSystem) RequestScrape(ctx context.Context, source string) (*ScrapeReceipt, error) {
	if m.scrapeFn != nil {
		return m.scrapeFn(ctx, source)
	}
	return &ScrapeReceipt{Source: source, Queued: true}, nil
}

func setupMux(sys System) *http.ServeMux {
	handler := NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)

	mux := http.NewServeMux()
	for _, route := range handler.Routes().Routes {
		pattern := route.Method + " /jobs" + route.Pattern
		if route.Pattern == "" {
			pattern = route.Method + " /jobs"
		}
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func TestList(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 1, 20},
		{"limit and offset translate to page", "?limit=10&offset=30", 4, 10},
		{"offset rounds down to containing page", "?limit=10&offset=35", 4, 10},
		{"limit clamps to max", "?limit=500&offset=0", 1, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got pagination.PageRequest
			sys := &mockSystem{
				listFn: func(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Job], error) {
					got = page
					result := pagination.NewPageResult([]Job{}, 0, page.Page, page.PageSize)
					return &result, nil
				},
			}
			mux := setupMux(sys)

			req := httptest.NewRequest("GET", "/jobs"+tc.query, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got.Page != tc.wantPage || got.PageSize != tc.wantPageSize {
				t.Errorf("expected page %d size %d, got page %d size %d",
					tc.wantPage, tc.wantPageSize, got.Page, got.PageSize)
			}
		})
	}
}

func TestScrape(t *testing.T) {
	t.Run("queues with default source", func(t *testing.T) {
		var gotSource string
		sys := &mockSystem{
			scrapeFn: func(ctx context.Context, source string) (*ScrapeReceipt, error) {
				gotSource = source
				return &ScrapeReceipt{Source: source, Queued: true}, nil
			},
		}
		mux := setupMux(sys)

		req := httptest.NewRequest("POST", "/jobs/scrape", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", rec.Code)
		}
		if gotSource != "default" {
			t.Errorf("expected default source, got %q", gotSource)
		}
	})

	t.Run("engine refusal surfaces as bad gateway", func(t *testing.T) {
		sys := &mockSystem{
			scrapeFn: func(ctx context.Context, source string) (*ScrapeReceipt, error) {
				return nil, &engine.Error{StatusCode: 503, Message: "scraper busy"}
			},
		}
		mux := setupMux(sys)

		req := httptest.NewRequest("POST", "/jobs/scrape", strings.NewReader(`{"source":"indeed"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "scraper busy") {
			t.Errorf("expected engine message, got %s", rec.Body.String())
		}
	})
}
