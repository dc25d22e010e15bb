package vision_test

import (
	"context"
	"errors"
	"testing"

	"github.com/teslashibe/go-roboai/pkg/status"
	"github.com/teslashibe/go-roboai/pkg/vision"
)

func TestImageFrameValidate(t *testing.T) {
	t.Run("well-formed frame passes", func(t *testing.T) {
		if err := vision.NewFrame(100, 100, 3).Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("grayscale and BGRA pass", func(t *testing.T) {
		for _, ch := range []int{1, 4} {
			if err := vision.NewFrame(8, 8, ch).Validate(); err != nil {
				t.Errorf("channels=%d: unexpected error: %v", ch, err)
			}
		}
	})

	malformed := []struct {
		name  string
		frame *vision.ImageFrame
	}{
		{"nil frame", nil},
		{"zero width", &vision.ImageFrame{Width: 0, Height: 10, Channels: 3}},
		{"zero height", &vision.ImageFrame{Width: 10, Height: 0, Channels: 3}},
		{"bad channels", &vision.ImageFrame{Width: 10, Height: 10, Channels: 2, Pix: make([]byte, 200)}},
		{"short buffer", &vision.ImageFrame{Width: 10, Height: 10, Channels: 3, Pix: make([]byte, 5)}},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frame.Validate()
			if !errors.Is(err, vision.ErrInvalidImage) {
				t.Errorf("expected ErrInvalidImage, got %v", err)
			}
		})
	}
}

func TestMockService(t *testing.T) {
	ctx := context.Background()

	t.Run("valid frame returns empty slice not error", func(t *testing.T) {
		mock := vision.NewMock()
		dets, err := mock.DetectFaces(ctx, vision.NewFrame(64, 64, 3))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dets == nil || len(dets) != 0 {
			t.Errorf("expected empty slice, got %v", dets)
		}
	})

	t.Run("malformed frame is a declared error", func(t *testing.T) {
		mock := vision.NewMock()
		_, err := mock.DetectFaces(ctx, &vision.ImageFrame{})
		if !errors.Is(err, vision.ErrInvalidImage) {
			t.Errorf("expected ErrInvalidImage, got %v", err)
		}
		_, err = mock.RecognizeObjects(ctx, &vision.ImageFrame{}, nil)
		if !errors.Is(err, vision.ErrInvalidImage) {
			t.Errorf("expected ErrInvalidImage, got %v", err)
		}
	})

	t.Run("closed vocabulary with no match yields empty slice", func(t *testing.T) {
		mock := vision.NewMock()
		mock.RecognizeObjectsFunc = func(ctx context.Context, frame *vision.ImageFrame, labels []string) ([]vision.Detection, error) {
			dets := []vision.Detection{
				{Box: vision.BoundingBox{XMax: 10, YMax: 10}, Confidence: 0.9, Label: "person"},
			}
			return vision.FilterLabels(dets, labels), nil
		}
		dets, err := mock.RecognizeObjects(ctx, vision.NewFrame(64, 64, 3), []string{"cup"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(dets) != 0 {
			t.Errorf("expected no detections for cup, got %v", dets)
		}
	})

	t.Run("status idempotent", func(t *testing.T) {
		mock := vision.NewMock()
		if mock.Status() != mock.Status() {
			t.Error("expected equal statuses without state change")
		}
		if got := mock.Status(); !got.Ready || got.ServiceName != vision.ServiceName {
			t.Errorf("unexpected status: %+v", got)
		}
	})

	t.Run("custom status surfaces readiness failure", func(t *testing.T) {
		mock := vision.NewMock()
		mock.StatusFunc = func() status.ServiceStatus {
			return status.Unavailable(vision.ServiceName, "camera missing")
		}
		if got := mock.Status(); got.Ready || got.Err != "camera missing" {
			t.Errorf("unexpected status: %+v", got)
		}
	})

	t.Run("calls are tracked", func(t *testing.T) {
		mock := vision.NewMock()
		frame := vision.NewFrame(8, 8, 3)
		mock.DetectFaces(ctx, frame)
		mock.RecognizeObjects(ctx, frame, []string{"cup"})
		mock.RecognizeObjects(ctx, frame, nil)

		if mock.CallCount("DetectFaces") != 1 {
			t.Errorf("expected 1 DetectFaces call, got %d", mock.CallCount("DetectFaces"))
		}
		if mock.CallCount("RecognizeObjects") != 2 {
			t.Errorf("expected 2 RecognizeObjects calls, got %d", mock.CallCount("RecognizeObjects"))
		}
		calls := mock.Calls()
		if len(calls) != 3 {
			t.Fatalf("expected 3 calls, got %d", len(calls))
		}
		if len(calls[1].Labels) != 1 || calls[1].Labels[0] != "cup" {
			t.Errorf("unexpected recorded labels: %v", calls[1].Labels)
		}
	})
}

func TestBackendError(t *testing.T) {
	inner := errors.New("inference failed")
	err := vision.WrapError("opencv", inner)
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to match inner")
	}
	if err.Error() != "vision [opencv]: inference failed" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if vision.WrapError("opencv", nil) != nil {
		t.Error("expected nil for nil error")
	}
}
