// Package dossier assembles the student's academic dossier: profile, grade
// table, workflow position, and company matches, served as JSON or exported
// as a spreadsheet.
package dossier

import (
	"errors"
	"net/http"

	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/internal/users"
	"github.com/mcggEz/gradalyze/internal/workflow"
)

// ErrInvalidInput marks a malformed dossier request.
var ErrInvalidInput = errors.New("invalid request")

// Dossier is the aggregated view of one student.
type Dossier struct {
	User      *users.User       `json:"user"`
	Grades    *users.GradeTable `json:"grades"`
	Workflow  workflow.State    `json:"workflow"`
	Companies []engine.Company  `json:"companies"`
}

// MapHTTPStatus maps dossier domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if status := users.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return http.StatusInternalServerError
}
