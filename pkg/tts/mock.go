package tts

import (
	"context"
	"sync"
	"time"

	"github.com/teslashibe/go-roboai/pkg/status"
)

// Mock implements Service for testing.
// All methods can be customized via function fields.
type Mock struct {
	// SynthesizeFunc is called when Synthesize is invoked.
	// If nil, supported language/voice pairs yield silent audio of roughly
	// natural speech pacing; unsupported pairs yield (nil, nil).
	SynthesizeFunc func(ctx context.Context, text string, opts ...SynthesizeOption) (*AudioResult, error)

	// StatusFunc is called when Status is invoked.
	// If nil, the mock reports ready.
	StatusFunc func() status.ServiceStatus

	// CloseFunc is called when Close is invoked. If nil, returns nil.
	CloseFunc func() error

	config *Config

	// Tracking
	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation for verification.
type MockCall struct {
	Method string
	Text   string
	Time   time.Time
}

// NewMock creates a mock synthesizer with contract-faithful defaults.
func NewMock(opts ...Option) *Mock {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return &Mock{config: cfg}
}

// Synthesize calls SynthesizeFunc and records the call.
// The default honors the full contract: empty text errors, oversized text
// errors, unsupported pairs are absent, supported pairs get silence.
func (m *Mock) Synthesize(ctx context.Context, text string, opts ...SynthesizeOption) (*AudioResult, error) {
	m.recordCall("Synthesize", text)
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text, opts...)
	}

	if text == "" {
		return nil, ErrEmptyText
	}
	if len([]rune(text)) > m.config.MaxTextLen {
		return nil, ErrTextTooLong
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := ResolveOptions(m.config, opts)
	if _, ok := ResolveVoice(params.Language, params.Voice); !ok {
		return nil, nil
	}

	// Silent audio at ~20ms per character gives natural speech pacing.
	sampleRate := SampleRateFromEncoding(m.config.OutputFormat)
	bytesPerChar := sampleRate * 2 / 50
	chars := len([]rune(text))

	return &AudioResult{
		Audio: make([]byte, chars*bytesPerChar),
		Format: AudioFormat{
			Encoding:   m.config.OutputFormat,
			SampleRate: sampleRate,
			Channels:   1,
			BitDepth:   16,
		},
		CharCount: chars,
		Duration:  time.Duration(chars) * 20 * time.Millisecond,
	}, nil
}

// Status calls StatusFunc, defaulting to ready.
func (m *Mock) Status() status.ServiceStatus {
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	return status.Ok(ServiceName)
}

// Close calls CloseFunc and records the call.
func (m *Mock) Close() error {
	m.recordCall("Close", "")
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// recordCall adds a call to the tracking list.
func (m *Mock) recordCall(method, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Text: text, Time: time.Now()})
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

// Reset clears all recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Failing returns a mock whose every synthesis returns the given error.
func Failing(err error) *Mock {
	m := NewMock()
	m.SynthesizeFunc = func(ctx context.Context, text string, opts ...SynthesizeOption) (*AudioResult, error) {
		return nil, err
	}
	m.StatusFunc = func() status.ServiceStatus {
		return status.Unavailable(ServiceName, err.Error())
	}
	return m
}

// Verify Mock implements Service at compile time.
var _ Service = (*Mock)(nil)
