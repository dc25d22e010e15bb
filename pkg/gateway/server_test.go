package gateway_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/teslashibe/go-roboai/pkg/asr"
	"github.com/teslashibe/go-roboai/pkg/gateway"
	"github.com/teslashibe/go-roboai/pkg/nav"
	"github.com/teslashibe/go-roboai/pkg/status"
	"github.com/teslashibe/go-roboai/pkg/tts"
	"github.com/teslashibe/go-roboai/pkg/vision"
)

func newTestServer(t *testing.T, services gateway.Services) *gateway.Server {
	t.Helper()
	if services.ASR == nil {
		services.ASR = asr.NewMock()
	}
	if services.TTS == nil {
		services.TTS = tts.NewMock()
	}
	if services.Vision == nil {
		services.Vision = vision.NewMock()
	}
	if services.Nav == nil {
		services.Nav = nav.NewMock()
	}
	return gateway.NewServer(services, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func postJSON(t *testing.T, s *gateway.Server, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func getJSON(t *testing.T, s *gateway.Server, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestRecognizeRoute(t *testing.T) {
	t.Run("empty audio yields null text", func(t *testing.T) {
		s := newTestServer(t, gateway.Services{ASR: asr.Transcribing("hello")})

		resp := postJSON(t, s, "/api/asr/recognize", gateway.RecognizeRequest{Audio: nil})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		out := decode[gateway.RecognizeResponse](t, resp)
		if out.Text != nil {
			t.Errorf("Text = %q, want null", *out.Text)
		}
	})

	t.Run("transcript round-trips", func(t *testing.T) {
		s := newTestServer(t, gateway.Services{ASR: asr.Transcribing("مرحبا")})

		resp := postJSON(t, s, "/api/asr/recognize", gateway.RecognizeRequest{
			Audio:    []byte{1, 2, 3, 4},
			LangCode: "ar-SA",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		out := decode[gateway.RecognizeResponse](t, resp)
		if out.Text == nil || *out.Text != "مرحبا" {
			t.Errorf("Text = %v, want مرحبا", out.Text)
		}
	})

	t.Run("unavailable maps to 503", func(t *testing.T) {
		mock := asr.NewMock()
		mock.RecognizeFunc = func(ctx context.Context, audio []byte, opts ...asr.RecognizeOption) (*asr.Result, error) {
			return nil, asr.ErrServiceUnavailable
		}
		s := newTestServer(t, gateway.Services{ASR: mock})

		resp := postJSON(t, s, "/api/asr/recognize", gateway.RecognizeRequest{Audio: []byte{1}})
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", resp.StatusCode)
		}
		out := decode[gateway.ErrorResponse](t, resp)
		if out.Error == "" {
			t.Error("error body is empty")
		}
		if out.RequestID == "" {
			t.Error("request_id missing from error body")
		}
	})
}

func TestSynthesizeRoute(t *testing.T) {
	t.Run("supported pair returns audio", func(t *testing.T) {
		s := newTestServer(t, gateway.Services{})

		resp := postJSON(t, s, "/api/tts/synthesize", gateway.SynthesizeRequest{
			Text:     "Hello",
			LangCode: "en-US",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		out := decode[gateway.SynthesizeResponse](t, resp)
		if len(out.Audio) == 0 {
			t.Error("Audio is empty, want samples")
		}
		if out.CharCount != 5 {
			t.Errorf("CharCount = %d, want 5", out.CharCount)
		}
	})

	t.Run("unsupported language yields null audio", func(t *testing.T) {
		s := newTestServer(t, gateway.Services{})

		resp := postJSON(t, s, "/api/tts/synthesize", gateway.SynthesizeRequest{
			Text:     "hola",
			LangCode: "es-MX",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		out := decode[gateway.SynthesizeResponse](t, resp)
		if out.Audio != nil {
			t.Errorf("Audio = %d bytes, want null", len(out.Audio))
		}
	})

	t.Run("empty text maps to 400", func(t *testing.T) {
		s := newTestServer(t, gateway.Services{})

		resp := postJSON(t, s, "/api/tts/synthesize", gateway.SynthesizeRequest{Text: ""})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestVisionRoutes(t *testing.T) {
	validFrame := gateway.FramePayload{
		Width:    2,
		Height:   2,
		Channels: 3,
		Data:     make([]byte, 12),
	}

	t.Run("invalid frame maps to 400", func(t *testing.T) {
		s := newTestServer(t, gateway.Services{})

		resp := postJSON(t, s, "/api/vision/faces", gateway.DetectRequest{
			Frame: gateway.FramePayload{Width: 2, Height: 2, Channels: 3, Data: []byte{0}},
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("no detections is an empty list", func(t *testing.T) {
		s := newTestServer(t, gateway.Services{})

		resp := postJSON(t, s, "/api/vision/objects", gateway.DetectRequest{
			Frame:      validFrame,
			ObjectList: []string{"cup"},
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		out := decode[gateway.DetectResponse](t, resp)
		if out.Detections == nil {
			t.Error("Detections is null, want []")
		}
		if len(out.Detections) != 0 {
			t.Errorf("Detections = %v, want empty", out.Detections)
		}
	})

	t.Run("detections round-trip", func(t *testing.T) {
		mock := vision.NewMock()
		mock.DetectFacesFunc = func(ctx context.Context, frame *vision.ImageFrame) ([]vision.Detection, error) {
			return []vision.Detection{
				{Box: vision.BoundingBox{XMin: 1, YMin: 1, XMax: 2, YMax: 2}, Confidence: 0.9, Label: "face"},
			}, nil
		}
		s := newTestServer(t, gateway.Services{Vision: mock})

		resp := postJSON(t, s, "/api/vision/faces", gateway.DetectRequest{Frame: validFrame})
		out := decode[gateway.DetectResponse](t, resp)
		if len(out.Detections) != 1 || out.Detections[0].Label != "face" {
			t.Errorf("Detections = %v, want one face", out.Detections)
		}
	})
}

func TestNavRoutes(t *testing.T) {
	t.Run("goal then cancel", func(t *testing.T) {
		s := newTestServer(t, gateway.Services{})

		resp := postJSON(t, s, "/api/nav/goal", gateway.GoalRequest{
			Target: nav.RobotPose{X: 1, Y: 2},
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("goal status = %d, want 200", resp.StatusCode)
		}
		goal := decode[gateway.GoalResponse](t, resp)
		if !goal.Accepted {
			t.Error("Accepted = false, want true")
		}

		resp = postJSON(t, s, "/api/nav/cancel", struct{}{})
		cancel := decode[gateway.CancelResponse](t, resp)
		if !cancel.Cancelled {
			t.Error("Cancelled = false, want true")
		}
	})

	t.Run("pose round-trips", func(t *testing.T) {
		want := nav.RobotPose{X: 1.5, Y: -2.5, Theta: 0.5}
		mock := nav.NewMock()
		mock.CurrentPoseFunc = func() nav.RobotPose { return want }
		s := newTestServer(t, gateway.Services{Nav: mock})

		resp := getJSON(t, s, "/api/nav/pose")
		pose := decode[nav.RobotPose](t, resp)
		if pose != want {
			t.Errorf("pose = %+v, want %+v", pose, want)
		}
	})

	t.Run("map null when not loaded", func(t *testing.T) {
		s := newTestServer(t, gateway.Services{})

		resp := getJSON(t, s, "/api/nav/map")
		out := decode[gateway.MapResponse](t, resp)
		if out.Map != nil {
			t.Errorf("Map = %+v, want null", out.Map)
		}
	})

	t.Run("state endpoint reports idle", func(t *testing.T) {
		s := newTestServer(t, gateway.Services{})

		resp := getJSON(t, s, "/api/nav/state")
		out := decode[gateway.StateResponse](t, resp)
		if out.State != nav.StateIdle {
			t.Errorf("State = %q, want %q", out.State, nav.StateIdle)
		}
	})
}

func TestStatusRoutes(t *testing.T) {
	t.Run("per-service status", func(t *testing.T) {
		s := newTestServer(t, gateway.Services{})

		resp := getJSON(t, s, "/api/asr/status")
		st := decode[status.ServiceStatus](t, resp)
		if st.ServiceName != asr.ServiceName {
			t.Errorf("ServiceName = %q, want %q", st.ServiceName, asr.ServiceName)
		}
		if !st.Ready {
			t.Error("Ready = false, want true")
		}
	})

	t.Run("composite reflects one broken service", func(t *testing.T) {
		mock := vision.NewMock()
		mock.StatusFunc = func() status.ServiceStatus {
			return status.Unavailable(vision.ServiceName, "model missing")
		}
		s := newTestServer(t, gateway.Services{Vision: mock})

		resp := getJSON(t, s, "/api/status")
		composite := decode[status.Composite](t, resp)
		if composite.Ready {
			t.Error("Ready = true, want false")
		}
		if len(composite.NotReady) != 1 || composite.NotReady[0].ServiceName != vision.ServiceName {
			t.Errorf("NotReady = %+v, want one vision entry", composite.NotReady)
		}
	})
}
