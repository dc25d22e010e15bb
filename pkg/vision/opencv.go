package vision

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-roboai/pkg/status"
)

const backendOpenCV = "opencv"

// OpenCV implements Service using gocv.
//
// Faces are detected with OpenCV's FaceDetectorYN (YuNet); objects with a
// MobileNet-SSD DNN. Inference is serialized behind a mutex because neither
// network is reentrant; concurrent callers block rather than corrupt state.
type OpenCV struct {
	config *Config
	logger *slog.Logger

	mu        sync.Mutex // protects faceNet, objectNet and readyErr
	faceNet   gocv.FaceDetectorYN
	objectNet gocv.Net
	readyErr  error
	closed    bool
}

// NewOpenCV creates the gocv-backed vision service.
// Missing model files are a fatal initialization failure.
func NewOpenCV(opts ...Option) (*OpenCV, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	for _, path := range []string{cfg.FaceModelPath, cfg.ObjectModelPath, cfg.ObjectConfigPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
	}

	faceNet := gocv.NewFaceDetectorYNWithParams(
		cfg.FaceModelPath,
		"", // no config file for ONNX
		image.Pt(320, 320),
		float32(cfg.ConfidenceThresh),
		0.3,  // NMS threshold
		5000, // top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	objectNet := gocv.ReadNet(cfg.ObjectModelPath, cfg.ObjectConfigPath)
	if objectNet.Empty() {
		faceNet.Close()
		return nil, fmt.Errorf("%w: failed to load %s", ErrModelNotFound, cfg.ObjectModelPath)
	}

	return &OpenCV{
		config:    cfg,
		logger:    cfg.Logger.With("component", "vision.opencv"),
		faceNet:   faceNet,
		objectNet: objectNet,
	}, nil
}

// DetectFaces finds faces in the frame using YuNet.
func (o *OpenCV) DetectFaces(ctx context.Context, frame *ImageFrame) ([]Detection, error) {
	if err := frame.Validate(); err != nil {
		return nil, WrapError(backendOpenCV, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.available(); err != nil {
		return nil, err
	}

	img, err := frameToMat(frame)
	if err != nil {
		return nil, WrapError(backendOpenCV, err)
	}
	defer img.Close()

	o.faceNet.SetInputSize(image.Pt(frame.Width, frame.Height))

	faces := gocv.NewMat()
	defer faces.Close()
	o.faceNet.Detect(img, &faces)

	// YuNet rows: x, y, w, h, 5 landmark pairs, score at column 14.
	detections := []Detection{}
	for r := 0; r < faces.Rows(); r++ {
		x := int(faces.GetFloatAt(r, 0))
		y := int(faces.GetFloatAt(r, 1))
		w := int(faces.GetFloatAt(r, 2))
		h := int(faces.GetFloatAt(r, 3))
		score := float64(faces.GetFloatAt(r, 14))

		detections = append(detections, Detection{
			Box:        clampBox(BoundingBox{XMin: x, YMin: y, XMax: x + w, YMax: y + h}, frame),
			Confidence: score,
			Label:      "face",
		})
	}

	o.logger.Debug("face detection complete",
		"faces", len(detections),
		"width", frame.Width,
		"height", frame.Height,
	)
	return detections, nil
}

// RecognizeObjects runs the SSD network over the frame.
func (o *OpenCV) RecognizeObjects(ctx context.Context, frame *ImageFrame, labels []string) ([]Detection, error) {
	if err := frame.Validate(); err != nil {
		return nil, WrapError(backendOpenCV, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.available(); err != nil {
		return nil, err
	}

	img, err := frameToMat(frame)
	if err != nil {
		return nil, WrapError(backendOpenCV, err)
	}
	defer img.Close()

	blob := gocv.BlobFromImage(img, 1.0/127.5, image.Pt(300, 300),
		gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	o.objectNet.SetInput(blob, "")
	prob := o.objectNet.Forward("")
	defer prob.Close()

	// SSD output shape is [1, 1, N, 7]:
	// image id, class id, confidence, left, top, right, bottom (normalized).
	results := gocv.GetBlobChannel(prob, 0, 0)
	defer results.Close()

	detections := []Detection{}
	for r := 0; r < results.Rows(); r++ {
		confidence := float64(results.GetFloatAt(r, 2))
		if confidence < o.config.ConfidenceThresh {
			continue
		}

		classID := int(results.GetFloatAt(r, 1))
		label := "unknown"
		if classID >= 0 && classID < len(o.config.ClassNames) {
			label = o.config.ClassNames[classID]
		}

		box := BoundingBox{
			XMin: int(results.GetFloatAt(r, 3) * float32(frame.Width)),
			YMin: int(results.GetFloatAt(r, 4) * float32(frame.Height)),
			XMax: int(results.GetFloatAt(r, 5) * float32(frame.Width)),
			YMax: int(results.GetFloatAt(r, 6) * float32(frame.Height)),
		}

		detections = append(detections, Detection{
			Box:        clampBox(box, frame),
			Confidence: confidence,
			Label:      label,
		})
	}

	filtered := FilterLabels(detections, labels)
	o.logger.Debug("object recognition complete",
		"detected", len(detections),
		"returned", len(filtered),
		"closed_vocabulary", len(labels) > 0,
	)
	return filtered, nil
}

// Status reports whether both detector networks are loaded.
func (o *OpenCV) Status() status.ServiceStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return status.Unavailable(ServiceName, "service closed")
	}
	if o.readyErr != nil {
		return status.Unavailable(ServiceName, o.readyErr.Error())
	}
	return status.Ok(ServiceName)
}

// Close releases both networks. The service reports not ready afterwards.
func (o *OpenCV) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true
	o.faceNet.Close()
	return o.objectNet.Close()
}

// available must be called with the mutex held.
func (o *OpenCV) available() error {
	if o.closed {
		return fmt.Errorf("%w: service closed", ErrServiceUnavailable)
	}
	if o.readyErr != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, o.readyErr)
	}
	return nil
}

// frameToMat converts an ImageFrame into a BGR Mat.
// Single-channel and BGRA frames are converted; the caller owns the Mat.
func frameToMat(frame *ImageFrame) (gocv.Mat, error) {
	var matType gocv.MatType
	switch frame.Channels {
	case 1:
		matType = gocv.MatTypeCV8UC1
	case 3:
		matType = gocv.MatTypeCV8UC3
	case 4:
		matType = gocv.MatTypeCV8UC4
	}

	raw, err := gocv.NewMatFromBytes(frame.Height, frame.Width, matType, frame.Pix)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("mat from frame: %w", err)
	}

	if frame.Channels == 3 {
		return raw, nil
	}
	defer raw.Close()

	bgr := gocv.NewMat()
	code := gocv.ColorGrayToBGR
	if frame.Channels == 4 {
		code = gocv.ColorBGRAToBGR
	}
	gocv.CvtColor(raw, &bgr, code)
	return bgr, nil
}

// clampBox clips a box to the frame bounds.
func clampBox(b BoundingBox, frame *ImageFrame) BoundingBox {
	if b.XMin < 0 {
		b.XMin = 0
	}
	if b.YMin < 0 {
		b.YMin = 0
	}
	if b.XMax > frame.Width {
		b.XMax = frame.Width
	}
	if b.YMax > frame.Height {
		b.YMax = frame.Height
	}
	return b
}

// Verify OpenCV implements Service at compile time.
var _ Service = (*OpenCV)(nil)
