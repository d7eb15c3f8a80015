package analysis

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/internal/users"
)

type stubEngine struct {
	companiesFn func(ctx context.Context, email string) ([]engine.Company, error)
}

func (s *stubEngine) URL(key string) string {
	return engine.Path(key)
}

func (s *stubEngine) ExtractGrades(ctx context.Context, email, storagePath string) (*engine.ExtractResult, error) {
	return nil, nil
}

func (s *stubEngine) ComputeArchetype(ctx context.Context, email string) (*engine.ArchetypeResult, error) {
	return nil, &engine.Error{StatusCode: 500, Message: "cluster failed"}
}

func (s *stubEngine) CompaniesForUser(ctx context.Context, email string) ([]engine.Company, error) {
	if s.companiesFn != nil {
		return s.companiesFn(ctx, email)
	}
	return nil, nil
}

func (s *stubEngine) CompleteRecommendations(ctx context.Context, email string) (*engine.RecommendationsResult, error) {
	return &engine.RecommendationsResult{Status: "completed", Companies: 3}, nil
}

func (s *stubEngine) ScrapeJobs(ctx context.Context, source string) error {
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCompaniesForUserSilentDegrade(t *testing.T) {
	t.Run("engine failure yields an empty list, not an error", func(t *testing.T) {
		eng := &stubEngine{
			companiesFn: func(ctx context.Context, email string) ([]engine.Company, error) {
				return nil, &engine.Error{StatusCode: 503, Message: "matcher down"}
			},
		}
		sys := New(nil, eng, nil, discardLogger())

		companies, err := sys.CompaniesForUser(context.Background(), "student@plm.edu.ph")
		if err != nil {
			t.Fatalf("expected silent degrade, got error %v", err)
		}
		if len(companies) != 0 {
			t.Errorf("expected empty list, got %d companies", len(companies))
		}
	})

	t.Run("successful fetch passes through", func(t *testing.T) {
		eng := &stubEngine{
			companiesFn: func(ctx context.Context, email string) ([]engine.Company, error) {
				return []engine.Company{{Name: "Acme", MatchPercentage: 87.5}}, nil
			},
		}
		sys := New(nil, eng, nil, discardLogger())

		companies, err := sys.CompaniesForUser(context.Background(), "student@plm.edu.ph")
		if err != nil {
			t.Fatal(err)
		}
		if len(companies) != 1 || companies[0].Name != "Acme" {
			t.Errorf("unexpected companies %+v", companies)
		}
	})

	t.Run("missing email is still a client error", func(t *testing.T) {
		sys := New(nil, &stubEngine{}, nil, discardLogger())

		if _, err := sys.CompaniesForUser(context.Background(), ""); err == nil {
			t.Error("expected validation error for missing email")
		}
	})
}

type mockSystem struct {
	computeFn func(ctx context.Context, email string) (*users.User, error)
}

func (m *mockSystem) Handler() *Handler {
	return nil
}

func (m *mockSystem) CompaniesForUser(ctx context.Context, email string) ([]engine.Company, error) {
	return []engine.Company{}, nil
}

func (m *mockSystem) ComputeArchetype(ctx context.Context, email string) (*users.User, error) {
	if m.computeFn != nil {
		return m.computeFn(ctx, email)
	}
	return &users.User{Email: email}, nil
}

func (m *mockSystem) CompleteRecommendations(ctx context.Context, email string) (*engine.RecommendationsResult, error) {
	return &engine.RecommendationsResult{Status: "completed"}, nil
}

func setupMux(sys System) *http.ServeMux {
	handler := NewHandler(sys, discardLogger())

	mux := http.NewServeMux()
	for _, route := range handler.Routes().Routes {
		mux.HandleFunc(route.Method+" /analysis"+route.Pattern, route.Handler)
	}
	return mux
}

func TestComputeArchetypeHandler(t *testing.T) {
	t.Run("requires email", func(t *testing.T) {
		mux := setupMux(&mockSystem{})

		req := httptest.NewRequest("POST", "/analysis/dev-compute-archetype", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("engine failure maps to bad gateway", func(t *testing.T) {
		sys := &mockSystem{
			computeFn: func(ctx context.Context, email string) (*users.User, error) {
				return nil, &engine.Error{StatusCode: 500, Message: "cluster failed"}
			},
		}
		mux := setupMux(sys)

		req := httptest.NewRequest("POST", "/analysis/dev-compute-archetype",
			strings.NewReader(`{"email":"student@plm.edu.ph"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("unknown profile maps to not found", func(t *testing.T) {
		sys := &mockSystem{
			computeFn: func(ctx context.Context, email string) (*users.User, error) {
				return nil, users.ErrNotFound
			},
		}
		mux := setupMux(sys)

		req := httptest.NewRequest("POST", "/analysis/dev-compute-archetype",
			strings.NewReader(`{"email":"nobody@plm.edu.ph"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}
