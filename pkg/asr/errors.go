package asr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ASR contract.
var (
	// ErrNoCredentials is returned at construction when a cloud backend has
	// neither an API key nor a token source.
	ErrNoCredentials = errors.New("asr: credentials required")

	// ErrServiceUnavailable is returned by Recognize while the recognizer is
	// not ready.
	ErrServiceUnavailable = errors.New("asr: service unavailable")

	// ErrBadAudio is returned when the audio bytes cannot be decoded under
	// the configured encoding. Empty audio is NOT bad audio; it recognizes
	// to nothing.
	ErrBadAudio = errors.New("asr: undecodable audio")
)

// BackendError wraps an error with backend context.
type BackendError struct {
	Backend string
	Err     error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("asr [%s]: %v", e.Backend, e.Err)
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
