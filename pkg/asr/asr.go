// Package asr defines the automatic speech recognition service contract.
//
// Recognize follows the module-wide error taxonomy: a nil Result with a nil
// error means no speech was recognized (silence, empty audio, low
// confidence) — recoverable absence, business as usual. Errors are reserved
// for fatal conditions: transport failures, missing resources, or calling an
// unavailable service.
//
// Two backends ship with the module: Google (Cloud Speech-to-Text) and Mock.
package asr

import (
	"context"

	"github.com/teslashibe/go-roboai/pkg/status"
)

// ServiceName identifies the ASR service in status reports.
const ServiceName = "asr"

// Result is a successful recognition.
type Result struct {
	// Text is the recognized transcript.
	Text string `json:"text"`

	// Confidence is the recognizer's score for Text, conventionally 0-1.
	Confidence float64 `json:"confidence"`

	// Language is the BCP-47 code recognition ran with.
	Language string `json:"language"`
}

// Service is the speech recognition contract.
//
// Implementations must be safe for concurrent callers and idempotent:
// recognizing the same audio twice yields the same result.
type Service interface {
	// Recognize converts encoded audio into text. A nil Result with nil
	// error means nothing was recognized. Audio encoding is fixed by the
	// service configuration, agreed out-of-band with the caller.
	Recognize(ctx context.Context, audio []byte, opts ...RecognizeOption) (*Result, error)

	// Status reports whether the recognizer is loaded and usable.
	Status() status.ServiceStatus

	// Close releases recognizer resources.
	Close() error
}

// RecognizeOption adjusts a single Recognize call.
type RecognizeOption func(*RecognizeParams)

// RecognizeParams are the per-call parameters after option resolution.
type RecognizeParams struct {
	Language string
}

// WithLanguage overrides the configured language for one call.
func WithLanguage(code string) RecognizeOption {
	return func(p *RecognizeParams) {
		p.Language = code
	}
}

// ResolveOptions merges per-call options over the configured defaults.
// Exported for remote transports that forward per-call parameters.
func ResolveOptions(cfg *Config, opts []RecognizeOption) RecognizeParams {
	p := RecognizeParams{Language: cfg.Language}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
