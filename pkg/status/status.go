// Package status defines the readiness model shared by all AI services.
//
// Every service exposes a point-in-time ServiceStatus through the Reporter
// interface. Statuses are value objects: constructed fresh on every query,
// never mutated, never persisted. The Aggregator composes the statuses of
// several services into a single system-level readiness signal.
package status

// ServiceStatus is a snapshot of one service's operational state.
//
// Invariant: Err is empty whenever Ready is true. When Ready is false, Err
// carries a human-readable explanation if one is available; it may be empty
// when no detail exists.
type ServiceStatus struct {
	ServiceName string `json:"service_name"`
	Ready       bool   `json:"is_ready"`
	Err         string `json:"error_message,omitempty"`
}

// Ok returns a ready status for the named service.
func Ok(service string) ServiceStatus {
	return ServiceStatus{ServiceName: service, Ready: true}
}

// Unavailable returns a not-ready status with an explanation.
// An empty reason is allowed when no detail is available.
func Unavailable(service, reason string) ServiceStatus {
	return ServiceStatus{ServiceName: service, Err: reason}
}

// String renders the status for logs and diagnostics.
func (s ServiceStatus) String() string {
	if s.Ready {
		return s.ServiceName + ": ready"
	}
	if s.Err == "" {
		return s.ServiceName + ": not ready"
	}
	return s.ServiceName + ": not ready (" + s.Err + ")"
}

// Reporter is implemented by every AI service.
// Status must be non-blocking, side-effect-free and idempotent: two calls
// without an intervening state change return equal values.
type Reporter interface {
	Status() ServiceStatus
}
