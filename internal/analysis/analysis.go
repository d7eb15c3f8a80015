// Package analysis exposes the archetype and career recommendation
// operations. The computation itself lives in the analysis engine; this
// domain forwards requests and persists the results onto profiles.
package analysis

import (
	"errors"
	"net/http"
)

// ErrInvalidInput marks a malformed analysis request.
var ErrInvalidInput = errors.New("invalid request")

// MapHTTPStatus maps analysis domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
