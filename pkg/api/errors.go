package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidBaseURL indicates the configured backend URL is unusable.
	ErrInvalidBaseURL = errors.New("api.invalid_base_url")

	// ErrRequestFailed indicates the request never produced an HTTP response.
	ErrRequestFailed = errors.New("api.request_failed")
)

// APIError is a non-2xx response from the backend, with the human-readable
// message the server put in the body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("api: backend returned %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 response, the signal the
// presentation layer uses to force re-authentication.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
