package tts

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"

	"github.com/teslashibe/go-roboai/pkg/status"
)

const backendGoogle = "google"

// Google implements Service using Cloud Text-to-Speech.
type Google struct {
	config *Config
	svc    *texttospeech.Service
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewGoogle creates the Cloud TTS backend. Construction fails without
// credentials or when the API client cannot be built — both fatal.
func NewGoogle(ctx context.Context, opts ...Option) (*Google, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var clientOpts []option.ClientOption
	if cfg.TokenSource != nil {
		clientOpts = append(clientOpts, option.WithTokenSource(cfg.TokenSource))
	} else {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}

	svc, err := texttospeech.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, WrapError(backendGoogle, fmt.Errorf("create client: %w", err))
	}

	return &Google{
		config: cfg,
		svc:    svc,
		logger: cfg.Logger.With("component", "tts.google"),
	}, nil
}

// Synthesize converts text to audio via Cloud TTS.
func (g *Google) Synthesize(ctx context.Context, text string, opts ...SynthesizeOption) (*AudioResult, error) {
	g.mu.Lock()
	closed := g.closed
	g.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("%w: service closed", ErrServiceUnavailable)
	}

	if text == "" {
		return nil, ErrEmptyText
	}
	chars := len([]rune(text))
	if chars > g.config.MaxTextLen {
		return nil, fmt.Errorf("%w: %d chars exceeds %d", ErrTextTooLong, chars, g.config.MaxTextLen)
	}

	params := ResolveOptions(g.config, opts)
	voice, ok := ResolveVoice(params.Language, params.Voice)
	if !ok {
		g.logger.Warn("unsupported language/voice pair",
			"language", params.Language,
			"voice", params.Voice,
		)
		return nil, nil
	}

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	sampleRate := SampleRateFromEncoding(g.config.OutputFormat)
	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: voice.LanguageCode,
			Name:         voice.Name,
		},
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding:   audioEncoding(g.config.OutputFormat),
			SampleRateHertz: int64(sampleRate),
		},
	}

	start := time.Now()
	resp, err := g.svc.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		// A voice the registry knows but the API rejects is still an
		// unsupported pair from the caller's point of view.
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 400 {
			g.logger.Warn("backend rejected voice",
				"voice", voice.Name,
				"error", apiErr.Message,
			)
			return nil, nil
		}
		return nil, WrapError(backendGoogle, err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, WrapError(backendGoogle, fmt.Errorf("decode audio: %w", err))
	}

	g.logger.Debug("synthesized audio",
		"chars", chars,
		"bytes", len(audio),
		"latency_ms", time.Since(start).Milliseconds(),
		"voice", voice.Name,
	)

	return &AudioResult{
		Audio: audio,
		Format: AudioFormat{
			Encoding:   g.config.OutputFormat,
			SampleRate: sampleRate,
			Channels:   1,
			BitDepth:   16,
		},
		CharCount: chars,
		Duration:  estimateDuration(len(audio), sampleRate),
	}, nil
}

// Status reports readiness. The backend is ready until closed.
func (g *Google) Status() status.ServiceStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return status.Unavailable(ServiceName, "service closed")
	}
	return status.Ok(ServiceName)
}

// Close shuts the backend down. Subsequent calls fail fast.
func (g *Google) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	return nil
}

// audioEncoding maps module encodings to Cloud TTS encoding names.
func audioEncoding(enc Encoding) string {
	if enc == EncodingMP3 {
		return "MP3"
	}
	return "LINEAR16"
}

// estimateDuration estimates playback time for mono PCM16.
func estimateDuration(audioBytes, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	samples := audioBytes / 2
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}

// Verify Google implements Service at compile time.
var _ Service = (*Google)(nil)
