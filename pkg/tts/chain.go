package tts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teslashibe/go-roboai/pkg/status"
)

// Chain implements Service by trying multiple backends in order.
// The first definitive answer wins: a synthesis result OR a (nil, nil)
// absence both stop the chain — absence means the pair is unsupported, and a
// fallback backend would not change that verdict for the same registry.
// Errors move on to the next backend; if all fail, an aggregate ChainError
// is returned.
type Chain struct {
	backends []Service
	logger   *slog.Logger
}

// NewChain creates a backend chain that tries backends in order.
// At least one backend is required.
func NewChain(backends ...Service) (*Chain, error) {
	if len(backends) == 0 {
		return nil, ErrNoBackends
	}
	return &Chain{
		backends: backends,
		logger:   slog.Default().With("component", "tts.chain"),
	}, nil
}

// NewChainWithLogger creates a backend chain with a custom logger.
func NewChainWithLogger(logger *slog.Logger, backends ...Service) (*Chain, error) {
	chain, err := NewChain(backends...)
	if err != nil {
		return nil, err
	}
	chain.logger = logger.With("component", "tts.chain")
	return chain, nil
}

// Synthesize tries each backend until one answers.
func (c *Chain) Synthesize(ctx context.Context, text string, opts ...SynthesizeOption) (*AudioResult, error) {
	var errs []error

	for i, b := range c.backends {
		result, err := b.Synthesize(ctx, text, opts...)
		if err == nil {
			if i > 0 {
				c.logger.Info("fallback backend answered",
					"backend_index", i,
					"chars", len(text),
				)
			}
			return result, nil
		}

		errs = append(errs, err)
		c.logger.Warn("backend failed, trying next",
			"backend_index", i,
			"error", err,
		)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, &ChainError{Errors: errs}
}

// Status reports ready if any backend is ready. When none is, the first
// backend's message is surfaced.
func (c *Chain) Status() status.ServiceStatus {
	var first status.ServiceStatus
	for i, b := range c.backends {
		s := b.Status()
		if s.Ready {
			return status.Ok(ServiceName)
		}
		if i == 0 {
			first = s
		}
	}
	return status.Unavailable(ServiceName, first.Err)
}

// Close closes all backends.
func (c *Chain) Close() error {
	var lastErr error
	for _, b := range c.backends {
		if err := b.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Backends returns the list of backends in the chain.
func (c *Chain) Backends() []Service {
	return c.backends
}

// ChainError aggregates errors from all backends in a chain.
type ChainError struct {
	Errors []error
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	if len(e.Errors) == 0 {
		return "tts chain: no errors recorded"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("tts chain: %v", e.Errors[0])
	}
	return fmt.Sprintf("tts chain: all %d backends failed, last error: %v", len(e.Errors), e.Errors[len(e.Errors)-1])
}

// Unwrap returns the last error in the chain.
func (e *ChainError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[len(e.Errors)-1]
}

// Verify Chain implements Service at compile time.
var _ Service = (*Chain)(nil)
