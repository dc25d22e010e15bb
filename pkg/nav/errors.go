package nav

import "errors"

// Sentinel errors for the navigation contract.
var (
	// ErrServiceUnavailable is returned by domain operations invoked while
	// the service is not ready. Goal rejection is NOT an error; it is the
	// false return of SetGoal.
	ErrServiceUnavailable = errors.New("nav: service unavailable")

	// ErrClosed is returned after the service has been shut down.
	ErrClosed = errors.New("nav: service closed")
)
