package vision

import (
	"errors"
	"fmt"
)

// Sentinel errors for the vision contract.
var (
	// ErrInvalidImage is returned for zero-sized or malformed image buffers.
	// Callers distinguish it from "no objects found", which is an empty
	// detection slice with a nil error.
	ErrInvalidImage = errors.New("vision: invalid image")

	// ErrServiceUnavailable is returned by domain operations invoked while
	// the service is not ready.
	ErrServiceUnavailable = errors.New("vision: service unavailable")

	// ErrModelNotFound is returned at construction when a model file is
	// missing. This is a fatal initialization failure.
	ErrModelNotFound = errors.New("vision: model not found")
)

// BackendError wraps an error with backend context.
type BackendError struct {
	Backend string
	Err     error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("vision [%s]: %v", e.Backend, e.Err)
}

// Unwrap returns the underlying error.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with backend context.
func WrapError(backend string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Backend: backend, Err: err}
}
