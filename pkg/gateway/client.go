package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-roboai/internal/httpc"
	"github.com/teslashibe/go-roboai/pkg/asr"
	"github.com/teslashibe/go-roboai/pkg/nav"
	"github.com/teslashibe/go-roboai/pkg/status"
	"github.com/teslashibe/go-roboai/pkg/tts"
	"github.com/teslashibe/go-roboai/pkg/vision"
)

// Client talks to a remote gateway. Its ASR, TTS, Vision and Nav accessors
// return implementations of the local service contracts, so callers cannot
// tell a remote backend from an in-process one.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	asrCfg *asr.Config
	ttsCfg *tts.Config
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithClientLogger sets the structured logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// NewClient creates a gateway client for the given base URL
// (e.g. "http://robot:8090").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpc.Client,
		logger:  slog.Default(),
		asrCfg:  asr.DefaultConfig(),
		ttsCfg:  tts.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "gateway.client")
	return c
}

// ASR returns the remote speech recognition service.
func (c *Client) ASR() asr.Service { return &remoteASR{c} }

// TTS returns the remote speech synthesis service.
func (c *Client) TTS() tts.Service { return &remoteTTS{c} }

// Vision returns the remote vision service.
func (c *Client) Vision() vision.Service { return &remoteVision{c} }

// Nav returns the remote navigation service.
func (c *Client) Nav() nav.Service { return &remoteNav{c} }

// Composite fetches the gateway's aggregate readiness.
func (c *Client) Composite(ctx context.Context) (status.Composite, error) {
	var composite status.Composite
	err := c.get(ctx, "/api/status", &composite, nil)
	return composite, err
}

// WatchStatus subscribes to the gateway's status stream. The channel closes
// when ctx is cancelled or the connection drops.
func (c *Client) WatchStatus(ctx context.Context) (<-chan status.Composite, error) {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/ws/status"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: dial status stream: %w", err)
	}

	ch := make(chan status.Composite)
	go func() {
		defer close(ch)
		defer conn.Close()
		for {
			var composite status.Composite
			if err := conn.ReadJSON(&composite); err != nil {
				if ctx.Err() == nil {
					c.logger.Debug("status stream ended", "error", err)
				}
				return
			}
			select {
			case ch <- composite:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Tear the connection down on cancellation so ReadJSON unblocks.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	return ch, nil
}

// post sends a JSON request and decodes a JSON response.
func (c *Client) post(ctx context.Context, path string, in, out any, unavailable error) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("gateway: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("gateway: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out, unavailable)
}

// get fetches and decodes a JSON response.
func (c *Client) get(ctx context.Context, path string, out any, unavailable error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("gateway: create request: %w", err)
	}
	return c.do(req, out, unavailable)
}

// do executes the request, translating the gateway's status codes back into
// the module error taxonomy. unavailable is the caller package's sentinel
// for the 503 case, so errors.Is keeps working across the wire.
func (c *Client) do(req *http.Request, out any, unavailable error) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody ErrorResponse
		data, _ := io.ReadAll(resp.Body)
		message := string(data)
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			message = errBody.Error
		}
		if resp.StatusCode == http.StatusServiceUnavailable && unavailable != nil {
			return fmt.Errorf("%w: %s", unavailable, message)
		}
		return fmt.Errorf("gateway: status %d: %s", resp.StatusCode, message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}

// remoteStatus fetches one service's status, degrading to a not-ready
// status when the gateway itself is unreachable.
func (c *Client) remoteStatus(service, path string) status.ServiceStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var s status.ServiceStatus
	if err := c.get(ctx, path, &s, nil); err != nil {
		return status.Unavailable(service, fmt.Sprintf("gateway unreachable: %v", err))
	}
	return s
}

// remoteASR implements asr.Service over the gateway.
type remoteASR struct{ c *Client }

func (r *remoteASR) Recognize(ctx context.Context, audio []byte, opts ...asr.RecognizeOption) (*asr.Result, error) {
	params := asr.ResolveOptions(r.c.asrCfg, opts)

	var resp RecognizeResponse
	err := r.c.post(ctx, "/api/asr/recognize", RecognizeRequest{
		Audio:    audio,
		LangCode: params.Language,
	}, &resp, asr.ErrServiceUnavailable)
	if err != nil {
		return nil, err
	}
	if resp.Text == nil {
		return nil, nil
	}
	return &asr.Result{
		Text:       *resp.Text,
		Confidence: resp.Confidence,
		Language:   resp.Language,
	}, nil
}

func (r *remoteASR) Status() status.ServiceStatus {
	return r.c.remoteStatus(asr.ServiceName, "/api/asr/status")
}

func (r *remoteASR) Close() error { return nil }

// remoteTTS implements tts.Service over the gateway.
type remoteTTS struct{ c *Client }

func (r *remoteTTS) Synthesize(ctx context.Context, text string, opts ...tts.SynthesizeOption) (*tts.AudioResult, error) {
	params := tts.ResolveOptions(r.c.ttsCfg, opts)

	var resp SynthesizeResponse
	err := r.c.post(ctx, "/api/tts/synthesize", SynthesizeRequest{
		Text:     text,
		LangCode: params.Language,
		VoiceID:  params.Voice,
	}, &resp, tts.ErrServiceUnavailable)
	if err != nil {
		return nil, err
	}
	if resp.Audio == nil {
		return nil, nil
	}
	return &tts.AudioResult{
		Audio: resp.Audio,
		Format: tts.AudioFormat{
			Encoding:   tts.Encoding(resp.Encoding),
			SampleRate: resp.SampleRate,
			Channels:   resp.Channels,
			BitDepth:   resp.BitDepth,
		},
		CharCount: resp.CharCount,
		Duration:  time.Duration(resp.DurationMs) * time.Millisecond,
	}, nil
}

func (r *remoteTTS) Status() status.ServiceStatus {
	return r.c.remoteStatus(tts.ServiceName, "/api/tts/status")
}

func (r *remoteTTS) Close() error { return nil }

// remoteVision implements vision.Service over the gateway.
type remoteVision struct{ c *Client }

func (r *remoteVision) detect(ctx context.Context, path string, frame *vision.ImageFrame, labels []string) ([]vision.Detection, error) {
	// Validate locally before shipping megabytes of pixels.
	if err := frame.Validate(); err != nil {
		return nil, err
	}

	var resp DetectResponse
	err := r.c.post(ctx, path, DetectRequest{
		Frame: FramePayload{
			Width:    frame.Width,
			Height:   frame.Height,
			Channels: frame.Channels,
			Data:     frame.Pix,
		},
		ObjectList: labels,
	}, &resp, vision.ErrServiceUnavailable)
	if err != nil {
		return nil, err
	}
	if resp.Detections == nil {
		return []vision.Detection{}, nil
	}
	return resp.Detections, nil
}

func (r *remoteVision) DetectFaces(ctx context.Context, frame *vision.ImageFrame) ([]vision.Detection, error) {
	return r.detect(ctx, "/api/vision/faces", frame, nil)
}

func (r *remoteVision) RecognizeObjects(ctx context.Context, frame *vision.ImageFrame, labels []string) ([]vision.Detection, error) {
	return r.detect(ctx, "/api/vision/objects", frame, labels)
}

func (r *remoteVision) Status() status.ServiceStatus {
	return r.c.remoteStatus(vision.ServiceName, "/api/vision/status")
}

func (r *remoteVision) Close() error { return nil }

// remoteNav implements nav.Service over the gateway.
type remoteNav struct{ c *Client }

func (r *remoteNav) CurrentPose() nav.RobotPose {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var pose nav.RobotPose
	if err := r.c.get(ctx, "/api/nav/pose", &pose, nav.ErrServiceUnavailable); err != nil {
		r.c.logger.Warn("pose fetch failed", "error", err)
		return nav.RobotPose{}
	}
	return pose
}

func (r *remoteNav) SetGoal(ctx context.Context, target nav.RobotPose) (bool, error) {
	var resp GoalResponse
	if err := r.c.post(ctx, "/api/nav/goal", GoalRequest{Target: target}, &resp, nav.ErrServiceUnavailable); err != nil {
		return false, err
	}
	return resp.Accepted, nil
}

func (r *remoteNav) Cancel() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var resp CancelResponse
	if err := r.c.post(ctx, "/api/nav/cancel", struct{}{}, &resp, nav.ErrServiceUnavailable); err != nil {
		r.c.logger.Warn("cancel failed", "error", err)
		return false
	}
	return resp.Cancelled
}

func (r *remoteNav) State() nav.State {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var resp StateResponse
	if err := r.c.get(ctx, "/api/nav/state", &resp, nav.ErrServiceUnavailable); err != nil {
		return nav.StateIdle
	}
	return resp.State
}

func (r *remoteNav) Map() *nav.OccupancyGrid {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var resp MapResponse
	if err := r.c.get(ctx, "/api/nav/map", &resp, nav.ErrServiceUnavailable); err != nil {
		r.c.logger.Warn("map fetch failed", "error", err)
		return nil
	}
	return resp.Map
}

func (r *remoteNav) Status() status.ServiceStatus {
	return r.c.remoteStatus(nav.ServiceName, "/api/nav/status")
}

// Compile-time contract checks for the remote implementations.
var (
	_ asr.Service    = (*remoteASR)(nil)
	_ tts.Service    = (*remoteTTS)(nil)
	_ vision.Service = (*remoteVision)(nil)
	_ nav.Service    = (*remoteNav)(nil)
)
