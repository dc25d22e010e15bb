package asr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	speech "google.golang.org/api/speech/v1"

	"github.com/teslashibe/go-roboai/pkg/status"
)

const backendGoogle = "google"

// Google implements Service using Cloud Speech-to-Text.
type Google struct {
	config *Config
	svc    *speech.Service
	logger *slog.Logger
	opus   *opusReader

	mu     sync.Mutex
	closed bool
}

// NewGoogle creates the Cloud Speech backend. Construction fails without
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

	svc, err := speech.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, WrapError(backendGoogle, fmt.Errorf("create client: %w", err))
	}

	g := &Google{
		config: cfg,
		svc:    svc,
		logger: cfg.Logger.With("component", "asr.google"),
	}

	if cfg.InputEncoding == EncodingOpus {
		g.opus, err = newOpusReader(cfg.SampleRate, 1)
		if err != nil {
			return nil, WrapError(backendGoogle, fmt.Errorf("opus decoder: %w", err))
		}
	}
	return g, nil
}

// Recognize sends audio to Cloud Speech and returns the top transcript.
// Empty audio, silence and unsupported languages recognize to (nil, nil).
func (g *Google) Recognize(ctx context.Context, audio []byte, opts ...RecognizeOption) (*Result, error) {
	g.mu.Lock()
	closed := g.closed
	g.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("%w: service closed", ErrServiceUnavailable)
	}

	if len(audio) == 0 {
		return nil, nil
	}

	params := ResolveOptions(g.config, opts)

	pcm := audio
	if g.opus != nil {
		var err error
		pcm, err = g.opus.decode(audio)
		if err != nil {
			return nil, WrapError(backendGoogle, fmt.Errorf("%w: %v", ErrBadAudio, err))
		}
		if len(pcm) == 0 {
			return nil, nil
		}
	}

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	req := &speech.RecognizeRequest{
		Config: &speech.RecognitionConfig{
			Encoding:        "LINEAR16",
			SampleRateHertz: int64(g.config.SampleRate),
			LanguageCode:    params.Language,
		},
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(pcm),
		},
	}

	resp, err := g.svc.Speech.Recognize(req).Context(ctx).Do()
	if err != nil {
		// An unsupported language code is a caller-recoverable condition,
		// not a fault of the recognizer.
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 400 &&
			strings.Contains(strings.ToLower(apiErr.Message), "language") {
			g.logger.Warn("unsupported language", "language", params.Language)
			return nil, nil
		}
		return nil, WrapError(backendGoogle, err)
	}

	text, confidence := topAlternative(resp)
	if text == "" || confidence < g.config.MinConfidence {
		g.logger.Debug("no speech recognized",
			"bytes", len(audio),
			"language", params.Language,
		)
		return nil, nil
	}

	g.logger.Debug("speech recognized",
		"chars", len(text),
		"confidence", confidence,
		"language", params.Language,
	)
	return &Result{Text: text, Confidence: confidence, Language: params.Language}, nil
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

// Close releases the decoder. Subsequent Recognize calls fail fast.
func (g *Google) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	return nil
}

// topAlternative joins the best alternative of each result segment.
func topAlternative(resp *speech.RecognizeResponse) (string, float64) {
	var parts []string
	confidence := 0.0
	for _, res := range resp.Results {
		if len(res.Alternatives) == 0 {
			continue
		}
		alt := res.Alternatives[0]
		if alt.Transcript == "" {
			continue
		}
		parts = append(parts, alt.Transcript)
		if alt.Confidence > confidence {
			confidence = alt.Confidence
		}
	}
	return strings.Join(parts, " "), confidence
}

// Verify Google implements Service at compile time.
var _ Service = (*Google)(nil)
