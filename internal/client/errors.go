package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound reports a missing record (HTTP 404). Match with errors.Is.
var ErrNotFound = errors.New("resource not found")

// ValidationError is a rejected create/update (HTTP 4xx other than 404). The
// server message is kept verbatim so it can be surfaced to the user unchanged.
type ValidationError struct {
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request rejected with status %d", e.StatusCode)
	}
	return e.Message
}

// TransientError is a network failure or server error (5xx). Retryable by
// user action only; the client never retries on its own.
type TransientError struct {
	StatusCode int // zero when the request never reached the server
	Cause      error
}

func (e *TransientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transient error: %v", e.Cause)
	}
	return fmt.Sprintf("transient error: server returned status %d", e.StatusCode)
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}
