package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error is a non-2xx response from the analysis engine. Message is taken
// from the response body when the engine supplied one, otherwise it falls
// back to the HTTP status text.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("engine: %s (status %d)", e.Message, e.StatusCode)
}

// MapHTTPStatus translates engine client errors to HTTP status codes.
// Engine-reported failures surface as 502 since the engine is upstream of
// this service.
func MapHTTPStatus(err error) int {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func responseError(resp *http.Response) error {
	message := http.StatusText(resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		var payload struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil && payload.Message != "" {
			message = payload.Message
		}
	}

	return &Error{StatusCode: resp.StatusCode, Message: message}
}
