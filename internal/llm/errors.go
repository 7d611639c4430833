package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies reasoning-service failures so callers can report
// them without string matching.
type ErrorKind string

const (
	KindTimeout       ErrorKind = "timeout"
	KindBadStatus     ErrorKind = "bad_status"
	KindMalformedBody ErrorKind = "malformed_body"
)

// ErrNotConfigured is returned when no provider is configured but a
// reasoning call is required.
var ErrNotConfigured = errors.New("llm: no provider configured")

// ServiceError wraps a failure from a reasoning backend.
type ServiceError struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("llm: %s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

func serviceErr(provider string, kind ErrorKind, err error) *ServiceError {
	return &ServiceError{Kind: kind, Provider: provider, Err: err}
}

// KindOf extracts the error kind when err is a ServiceError.
func KindOf(err error) (ErrorKind, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}
