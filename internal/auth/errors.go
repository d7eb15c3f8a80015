package auth

import (
	"errors"
	"net/http"

	"github.com/mcggEz/gradalyze/internal/users"
)

// Domain errors for authentication operations.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrMissingFields      = errors.New("email, password, and name are required")
)

// MapHTTPStatus maps auth domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInvalidToken) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrWeakPassword) || errors.Is(err, ErrMissingFields) {
		return http.StatusBadRequest
	}
	if errors.Is(err, users.ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, users.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
