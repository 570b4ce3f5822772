package apiclient

import (
	"errors"
	"fmt"
)

// Sentinel kinds for client errors. Use errors.Is on returned errors.
var (
	ErrEmptyBaseURL = errors.New("base url must not be empty")
	ErrTransport    = errors.New("transport failure")
	ErrTimeout      = errors.New("request timed out")
	ErrHTTPStatus   = errors.New("unexpected http status")
	ErrPathParams   = errors.New("path parameter count mismatch")
)

// StatusError is returned when the backend answers outside the 2xx range.
// The body is kept verbatim so callers can show the server's message.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

// StatusCode extracts the HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
