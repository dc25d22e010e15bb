package status

import (
	"context"
	"log/slog"
	"time"
)

// Composite is the system-level readiness derived from several services.
type Composite struct {
	// Ready is true only if every registered service reported ready.
	Ready bool `json:"is_ready"`

	// NotReady holds the statuses of the failing services, in registration
	// order. Empty when Ready is true.
	NotReady []ServiceStatus `json:"not_ready,omitempty"`
}

// Equal reports whether two composites describe the same system state.
func (c Composite) Equal(other Composite) bool {
	if c.Ready != other.Ready || len(c.NotReady) != len(other.NotReady) {
		return false
	}
	for i := range c.NotReady {
		if c.NotReady[i] != other.NotReady[i] {
			return false
		}
	}
	return true
}

// Aggregator polls a fixed set of services and reports composite readiness.
// It holds no state beyond the reporter list and is safe for concurrent use.
type Aggregator struct {
	reporters []Reporter
	logger    *slog.Logger
}

// NewAggregator creates an aggregator over the given services.
// Registration order is preserved in Composite.NotReady.
func NewAggregator(reporters ...Reporter) *Aggregator {
	return &Aggregator{
		reporters: reporters,
		logger:    slog.Default().With("component", "status.aggregator"),
	}
}

// WithLogger sets the structured logger used by Watch.
func (a *Aggregator) WithLogger(logger *slog.Logger) *Aggregator {
	a.logger = logger.With("component", "status.aggregator")
	return a
}

// Check queries every service once and returns the composite result.
func (a *Aggregator) Check() Composite {
	composite := Composite{Ready: true}
	for _, r := range a.reporters {
		s := r.Status()
		if !s.Ready {
			composite.Ready = false
			composite.NotReady = append(composite.NotReady, s)
		}
	}
	return composite
}

// Watch polls all services at the given interval and invokes fn whenever the
// composite changes, including once with the initial state. It blocks until
// ctx is cancelled.
func (a *Aggregator) Watch(ctx context.Context, interval time.Duration, fn func(Composite)) {
	last := a.Check()
	fn(last)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current := a.Check()
			if !current.Equal(last) {
				a.logger.Info("system readiness changed",
					"ready", current.Ready,
					"failing", len(current.NotReady),
				)
				fn(current)
				last = current
			}
		}
	}
}
