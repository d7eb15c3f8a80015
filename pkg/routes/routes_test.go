package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mcggEz/gradalyze/pkg/routes"
)

func handlerReturning(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestRegisterFlatGroup(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/users",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: handlerReturning("list")},
			{Method: "GET", Pattern: "/{id}", Handler: handlerReturning("find")},
		},
	})

	tests := []struct {
		name string
		path string
		want string
	}{
		{"group root", "/users", "list"},
		{"pattern route", "/users/42", "find"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/users",
		Children: []routes.Group{
			{
				Prefix: "/grades",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: handlerReturning("grades")},
					{Method: "PATCH", Pattern: "/cell", Handler: handlerReturning("cell")},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/users/grades", nil))
	if rec.Body.String() != "grades" {
		t.Errorf("body = %q, want grades", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("PATCH", "/users/grades/cell", nil))
	if rec.Body.String() != "cell" {
		t.Errorf("body = %q, want cell", rec.Body.String())
	}
}

func TestRegisterEnforcesMethod(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/jobs",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/scrape", Handler: handlerReturning("queued")},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/jobs/scrape", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
