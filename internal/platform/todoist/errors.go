package todoist

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned when the remote service answers with a non-2xx status.
// Body holds a truncated copy of the response body for diagnostics.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("todoist API error: %s %s returned %d: %s",
		e.Method, e.Path, e.StatusCode, e.Body)
}

// IsNotFound reports whether the error is a remote 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
