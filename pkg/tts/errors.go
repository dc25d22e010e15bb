package tts

import (
	"errors"
	"fmt"
)

// Sentinel errors for the TTS contract.
var (
	// ErrEmptyText is returned when Synthesize is called with empty text.
	ErrEmptyText = errors.New("tts: empty text")

	// ErrTextTooLong is returned when text exceeds Config.MaxTextLen.
	ErrTextTooLong = errors.New("tts: text too long")

	// ErrNoCredentials is returned at construction when a cloud backend has
	// neither an API key nor a token source.
	ErrNoCredentials = errors.New("tts: credentials required")

	// ErrServiceUnavailable is returned by Synthesize while the backend is
	// not ready.
	ErrServiceUnavailable = errors.New("tts: service unavailable")

	// ErrNoBackends is returned when a chain is built without backends.
	ErrNoBackends = errors.New("tts: no backends available")
)

// APIError represents an error response from a TTS API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error message from the API.
	Message string

	// Backend identifies which backend returned the error.
	Backend string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("tts [%s]: API error %d: %s", e.Backend, e.StatusCode, e.Message)
}

// IsRateLimited returns true for HTTP 429.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsServerError returns true for HTTP 5xx.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsRetryable returns true if the request should be retried.
func (e *APIError) IsRetryable() bool {
	return e.IsRateLimited() || e.IsServerError()
}

// BackendError wraps an error with backend context.
type BackendError struct {
	Backend string
	Err     error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("tts [%s]: %v", e.Backend, e.Err)
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
