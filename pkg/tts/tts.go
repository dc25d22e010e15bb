// Package tts defines the text-to-speech service contract.
//
// The package supports multiple backends behind a single Service interface:
// Google (Cloud Text-to-Speech), Mock (test double) and Chain (ordered
// fallback across backends). Callers switch backends without code changes.
//
// Result semantics follow the module-wide error taxonomy: an unsupported
// language/voice pair yields a nil AudioResult with a nil error (recoverable
// absence), while empty or oversized text is invalid input and surfaces a
// sentinel error.
package tts

import (
	"context"
	"time"

	"github.com/teslashibe/go-roboai/pkg/status"
)

// ServiceName identifies the TTS service in status reports.
const ServiceName = "tts"

// Service is the speech synthesis contract.
// Implementations must be safe for concurrent callers.
type Service interface {
	// Synthesize converts text to audio. A nil AudioResult with nil error
	// means the requested language/voice pair is unsupported. Empty text is
	// ErrEmptyText; text over the configured maximum is ErrTextTooLong.
	Synthesize(ctx context.Context, text string, opts ...SynthesizeOption) (*AudioResult, error)

	// Status reports whether the synthesizer is usable.
	Status() status.ServiceStatus

	// Close releases any resources held by the backend.
	Close() error
}

// AudioResult is a complete synthesis result.
type AudioResult struct {
	// Audio contains the raw audio data in the specified format.
	Audio []byte

	// Format describes the audio encoding and sample rate.
	Format AudioFormat

	// Duration is the estimated playback duration.
	Duration time.Duration

	// CharCount is the number of characters synthesized.
	CharCount int
}

// AudioFormat describes the audio encoding parameters.
type AudioFormat struct {
	// Encoding specifies the audio codec.
	Encoding Encoding

	// SampleRate in Hz.
	SampleRate int

	// Channels is 1 for mono, 2 for stereo.
	Channels int

	// BitDepth for PCM formats.
	BitDepth int
}

// Encoding represents audio encoding types.
type Encoding string

const (
	// EncodingPCM16 is 16kHz mono PCM16.
	EncodingPCM16 Encoding = "pcm_16000"

	// EncodingPCM24 is 24kHz mono PCM16.
	EncodingPCM24 Encoding = "pcm_24000"

	// EncodingMP3 is MP3 at 32kbps.
	EncodingMP3 Encoding = "mp3"
)

// SampleRateFromEncoding extracts the sample rate from an encoding type.
func SampleRateFromEncoding(enc Encoding) int {
	switch enc {
	case EncodingPCM16:
		return 16000
	case EncodingPCM24:
		return 24000
	case EncodingMP3:
		return 24000
	default:
		return 24000
	}
}

// SynthesizeOption adjusts a single Synthesize call.
type SynthesizeOption func(*SynthesizeParams)

// SynthesizeParams are the per-call parameters after option resolution.
type SynthesizeParams struct {
	Language string
	Voice    string
}

// WithLanguage overrides the configured language for one call.
func WithLanguage(code string) SynthesizeOption {
	return func(p *SynthesizeParams) {
		p.Language = code
	}
}

// WithVoiceID overrides the configured voice for one call.
// Voice IDs are symbolic names resolved through the voice registry.
func WithVoiceID(voice string) SynthesizeOption {
	return func(p *SynthesizeParams) {
		p.Voice = voice
	}
}

// ResolveOptions merges per-call options over the configured defaults.
// Exported for remote transports that forward per-call parameters.
func ResolveOptions(cfg *Config, opts []SynthesizeOption) SynthesizeParams {
	p := SynthesizeParams{Language: cfg.DefaultLanguage, Voice: cfg.DefaultVoice}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
