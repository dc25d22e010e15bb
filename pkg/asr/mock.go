package asr

import (
	"context"
	"sync"

	"github.com/teslashibe/go-roboai/pkg/status"
)

// Mock implements Service for testing.
// All methods can be customized via function fields.
type Mock struct {
	// RecognizeFunc is called when Recognize is invoked.
	// If nil, every call recognizes nothing (nil, nil).
	RecognizeFunc func(ctx context.Context, audio []byte, opts ...RecognizeOption) (*Result, error)

	// StatusFunc is called when Status is invoked.
	// If nil, the mock reports ready.
	StatusFunc func() status.ServiceStatus

	// Tracking
	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a Recognize invocation for verification.
type MockCall struct {
	AudioLen int
}

// NewMock creates a mock recognizer that hears nothing.
func NewMock() *Mock {
	return &Mock{}
}

// Transcribing returns a mock whose every call recognizes the given text.
func Transcribing(text string) *Mock {
	return &Mock{
		RecognizeFunc: func(ctx context.Context, audio []byte, opts ...RecognizeOption) (*Result, error) {
			if len(audio) == 0 {
				return nil, nil
			}
			return &Result{Text: text, Confidence: 0.95}, nil
		},
	}
}

// Recognize calls RecognizeFunc and records the call.
func (m *Mock) Recognize(ctx context.Context, audio []byte, opts ...RecognizeOption) (*Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{AudioLen: len(audio)})
	m.mu.Unlock()

	if m.RecognizeFunc != nil {
		return m.RecognizeFunc(ctx, audio, opts...)
	}
	return nil, nil
}

// Status calls StatusFunc, defaulting to ready.
func (m *Mock) Status() status.ServiceStatus {
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	return status.Ok(ServiceName)
}

// Close is a no-op for the mock.
func (m *Mock) Close() error { return nil }

// Calls returns all recorded Recognize calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// Verify Mock implements Service at compile time.
var _ Service = (*Mock)(nil)
