package tts

import (
	"log/slog"
	"time"

	"golang.org/x/oauth2"
)

// Config holds TTS backend configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// DefaultLanguage is the BCP-47 code used when a call does not specify
	// one.
	DefaultLanguage string

	// DefaultVoice is the symbolic voice ID used when a call does not
	// specify one. Resolved via the voice registry.
	DefaultVoice string

	// MaxTextLen bounds a single synthesis request in characters.
	// Longer text returns ErrTextTooLong.
	MaxTextLen int

	// OutputFormat for synthesized audio.
	OutputFormat Encoding

	// Credentials for cloud backends. TokenSource wins when both are set.
	APIKey      string
	TokenSource oauth2.TokenSource

	// Timeout bounds a single synthesis request.
	Timeout time.Duration

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring TTS backends.
type Option func(*Config)

// WithDefaultLanguage sets the default synthesis language.
func WithDefaultLanguage(code string) Option {
	return func(c *Config) {
		c.DefaultLanguage = code
	}
}

// WithDefaultVoice sets the default symbolic voice ID.
func WithDefaultVoice(voice string) Option {
	return func(c *Config) {
		c.DefaultVoice = voice
	}
}

// WithMaxTextLen bounds the accepted text length.
func WithMaxTextLen(n int) Option {
	return func(c *Config) {
		c.MaxTextLen = n
	}
}

// WithOutputFormat sets the audio output format.
func WithOutputFormat(format Encoding) Option {
	return func(c *Config) {
		c.OutputFormat = format
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

// WithTimeout bounds a single synthesis request.
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

// DefaultConfig returns sensible default configuration.
// Defaults follow the robot's primary deployment locale.
func DefaultConfig() *Config {
	return &Config{
		DefaultLanguage: "ar-SA",
		DefaultVoice:    "default_female",
		MaxTextLen:      5000,
		OutputFormat:    EncodingPCM24,
		Timeout:         30 * time.Second,
		Logger:          slog.Default(),
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
