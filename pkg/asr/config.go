package asr

import (
	"log/slog"
	"time"

	"golang.org/x/oauth2"
)

// Encoding identifies the audio encoding a service instance accepts.
type Encoding string

const (
	// EncodingPCM16 is raw little-endian 16-bit mono PCM.
	EncodingPCM16 Encoding = "pcm16"

	// EncodingOpus is a sequence of length-prefixed Opus packets
	// (2-byte big-endian length before each packet). Decoded to PCM16
	// before recognition.
	EncodingOpus Encoding = "opus"
)

// Config holds ASR backend configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// Language is the default BCP-47 recognition language.
	Language string

	// SampleRate of the input audio in Hz.
	SampleRate int

	// InputEncoding of the audio bytes passed to Recognize.
	InputEncoding Encoding

	// MinConfidence drops transcripts below this score (reported as no
	// recognition, not an error).
	MinConfidence float64

	// Credentials for cloud backends. APIKey and TokenSource are
	// alternatives; TokenSource wins when both are set.
	APIKey      string
	TokenSource oauth2.TokenSource

	// Timeout bounds a single recognition request.
	Timeout time.Duration

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring ASR backends.
type Option func(*Config)

// WithConfigLanguage sets the default recognition language.
func WithConfigLanguage(code string) Option {
	return func(c *Config) {
		c.Language = code
	}
}

// WithSampleRate sets the input sample rate in Hz.
func WithSampleRate(rate int) Option {
	return func(c *Config) {
		c.SampleRate = rate
	}
}

// WithEncoding sets the input audio encoding.
func WithEncoding(enc Encoding) Option {
	return func(c *Config) {
		c.InputEncoding = enc
	}
}

// WithMinConfidence sets the confidence floor for transcripts.
func WithMinConfidence(min float64) Option {
	return func(c *Config) {
		c.MinConfidence = min
	}
}

// WithAPIKey sets the API key for cloud backends.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTokenSource sets the OAuth2 token source for cloud backends.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Config) {
		c.TokenSource = ts
	}
}

// WithTimeout bounds a single recognition request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithLogger sets the structured logger for the backend.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns sensible defaults. The default language follows the
// robot's primary deployment locale.
func DefaultConfig() *Config {
	return &Config{
		Language:      "ar-SA",
		SampleRate:    16000,
		InputEncoding: EncodingPCM16,
		MinConfidence: 0.0,
		Timeout:       30 * time.Second,
		Logger:        slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that cloud credentials are present.
func (c *Config) Validate() error {
	if c.APIKey == "" && c.TokenSource == nil {
		return ErrNoCredentials
	}
	return nil
}
