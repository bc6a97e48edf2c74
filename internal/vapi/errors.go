package vapi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound reports a 404 from the platform: the assistant (or call)
	// does not exist, or was already deleted.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized reports a 401/403: the API key was rejected.
	ErrUnauthorized = errors.New("api key rejected")
)

// FieldViolation names one field that failed local validation.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is returned before any HTTP request is sent and carries
// every violated field, not just the first.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RemoteError carries a non-2xx platform response that is not a 401/403/404,
// so callers can render the server's own message.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("vapi api status %d: %s", e.StatusCode, e.Message)
}

// UnreachableError wraps a transport-level failure (dial, TLS, timeout).
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("vapi api unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// ProtocolError wraps a malformed response body on an otherwise successful
// status.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("vapi api malformed response: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// ErrorCode maps a client error to a stable code used for HTTP error bodies
// and metrics labels. A nil error maps to "ok".
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
	}
	var (
		validation  *ValidationError
		remote      *RemoteError
		unreachable *UnreachableError
		protocol    *ProtocolError
	)
	switch {
	case errors.As(err, &validation):
		return "validation_failed"
	case errors.As(err, &remote):
		return "remote_error"
	case errors.As(err, &unreachable):
		return "unreachable"
	case errors.As(err, &protocol):
		return "protocol_error"
	default:
		return "internal_error"
	}
}
