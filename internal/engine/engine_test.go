package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mcggEz/gradalyze/internal/config"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) System {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.EngineConfig{BaseURL: server.URL, Timeout: "5s"}
	return New(cfg, discard())
}

func TestPath(t *testing.T) {
	t.Run("resolves every known key", func(t *testing.T) {
		keys := []string{
			EndpointExtractGrades,
			EndpointComputeArchetype,
			EndpointCompaniesForUser,
			EndpointCompleteRecommendations,
			EndpointScrapeJobs,
		}
		for _, key := range keys {
			if path := Path(key); path == "" {
				t.Errorf("key %q resolved to empty path", key)
			}
		}
	})

	t.Run("panics on unknown key", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for unknown key")
			}
		}()
		Path("no_such_endpoint")
	})
}

func TestExtractGrades(t *testing.T) {
	t.Run("returns structured rows", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != Path(EndpointExtractGrades) {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"grades":[{"subject":"CS 101 - Intro","units":3,"grade":1.5}],"text":"raw"}`)
		})

		result, err := client.ExtractGrades(context.Background(), "student@plm.edu.ph", "transcripts/abc.pdf")
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Grades) != 1 {
			t.Fatalf("expected 1 grade row, got %d", len(result.Grades))
		}
	})

	t.Run("salvages rows from raw text fallback", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, "{\"grades\":[],\"text\":\"```json\\n[{\\\"subject\\\":\\\"GE 1 - Ethics\\\"}]\\n```\"}")
		})

		result, err := client.ExtractGrades(context.Background(), "student@plm.edu.ph", "transcripts/abc.pdf")
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Grades) != 1 {
			t.Fatalf("expected salvaged row, got %d", len(result.Grades))
		}
	})
}

func TestErrorExtraction(t *testing.T) {
	t.Run("uses engine-supplied message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"message":"transcript is not readable"}`)
		})

		_, err := client.ComputeArchetype(context.Background(), "student@plm.edu.ph")
		var engineErr *Error
		if !errors.As(err, &engineErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if engineErr.Message != "transcript is not readable" {
			t.Errorf("unexpected message %q", engineErr.Message)
		}
		if engineErr.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("unexpected status %d", engineErr.StatusCode)
		}
	})

	t.Run("falls back to status text", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `not json`)
		})

		_, err := client.CompaniesForUser(context.Background(), "student@plm.edu.ph")
		var engineErr *Error
		if !errors.As(err, &engineErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if engineErr.Message != http.StatusText(http.StatusInternalServerError) {
			t.Errorf("unexpected message %q", engineErr.Message)
		}
	})

	t.Run("maps engine errors to bad gateway", func(t *testing.T) {
		err := &Error{StatusCode: 500, Message: "boom"}
		if status := MapHTTPStatus(err); status != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", status)
		}
		if status := MapHTTPStatus(errors.New("other")); status != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", status)
		}
	})
}
