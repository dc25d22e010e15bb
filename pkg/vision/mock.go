package vision

import (
	"context"
	"sync"

	"github.com/teslashibe/go-roboai/pkg/status"
)

// Mock implements Service for testing.
// All methods can be customized via function fields.
type Mock struct {
	// DetectFacesFunc is called when DetectFaces is invoked.
	// If nil, a valid frame yields no detections.
	DetectFacesFunc func(ctx context.Context, frame *ImageFrame) ([]Detection, error)

	// RecognizeObjectsFunc is called when RecognizeObjects is invoked.
	// If nil, a valid frame yields no detections.
	RecognizeObjectsFunc func(ctx context.Context, frame *ImageFrame, labels []string) ([]Detection, error)

	// StatusFunc is called when Status is invoked.
	// If nil, the mock reports ready.
	StatusFunc func() status.ServiceStatus

	// Tracking
	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation for verification.
type MockCall struct {
	Method string
	Labels []string
}

// NewMock creates a mock vision service that validates frames and returns
// empty detection slices, mirroring a backend that sees an empty scene.
func NewMock() *Mock {
	return &Mock{}
}

// DetectFaces calls DetectFacesFunc and records the call.
// The default validates the frame and returns no detections.
func (m *Mock) DetectFaces(ctx context.Context, frame *ImageFrame) ([]Detection, error) {
	m.recordCall("DetectFaces", nil)
	if m.DetectFacesFunc != nil {
		return m.DetectFacesFunc(ctx, frame)
	}
	if err := frame.Validate(); err != nil {
		return nil, WrapError("mock", err)
	}
	return []Detection{}, nil
}

// RecognizeObjects calls RecognizeObjectsFunc and records the call.
func (m *Mock) RecognizeObjects(ctx context.Context, frame *ImageFrame, labels []string) ([]Detection, error) {
	m.recordCall("RecognizeObjects", labels)
	if m.RecognizeObjectsFunc != nil {
		return m.RecognizeObjectsFunc(ctx, frame, labels)
	}
	if err := frame.Validate(); err != nil {
		return nil, WrapError("mock", err)
	}
	return []Detection{}, nil
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

// recordCall adds a call to the tracking list.
func (m *Mock) recordCall(method string, labels []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Labels: labels})
}

// Calls returns all recorded method calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of times a method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

// Verify Mock implements Service at compile time.
var _ Service = (*Mock)(nil)
