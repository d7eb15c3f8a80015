package users

import (
	"errors"
	"net/http"
)

// Domain errors for profile operations.
var (
	ErrNotFound      = errors.New("user not found")
	ErrDuplicate     = errors.New("user already exists")
	ErrInvalidInput  = errors.New("invalid request")
	ErrNoTranscript  = errors.New("no transcript on file")
	ErrNoCertificate = errors.New("certificate not found")
)

// MapHTTPStatus maps profile domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	var validation *ValidationError
	if errors.As(err, &validation) {
		if validation.TooLarge {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoCertificate) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNoTranscript) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
