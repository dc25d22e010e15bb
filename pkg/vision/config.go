package vision

import "log/slog"

// Config holds vision backend configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// FaceModelPath is the YuNet ONNX model for face detection.
	FaceModelPath string

	// ObjectModelPath and ObjectConfigPath describe the DNN object
	// detection network (MobileNet-SSD by default).
	ObjectModelPath  string
	ObjectConfigPath string

	// ClassNames maps DNN class indices to labels. Index 0 is background.
	ClassNames []string

	// ConfidenceThresh drops detections below this score.
	ConfidenceThresh float64

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring vision backends.
type Option func(*Config)

// WithFaceModel sets the face detection model path.
func WithFaceModel(path string) Option {
	return func(c *Config) {
		c.FaceModelPath = path
	}
}

// WithObjectModel sets the object detection model and its config file.
func WithObjectModel(modelPath, configPath string) Option {
	return func(c *Config) {
		c.ObjectModelPath = modelPath
		c.ObjectConfigPath = configPath
	}
}

// WithClassNames sets the label set for the object detection network.
func WithClassNames(names []string) Option {
	return func(c *Config) {
		c.ClassNames = names
	}
}

// WithConfidenceThresh sets the minimum detection confidence.
func WithConfidenceThresh(thresh float64) Option {
	return func(c *Config) {
		c.ConfidenceThresh = thresh
	}
}

// WithLogger sets the structured logger for the backend.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns production defaults.
// The class list matches the COCO subset MobileNet-SSD ships with.
func DefaultConfig() *Config {
	return &Config{
		FaceModelPath:    "models/face_detection_yunet.onnx",
		ObjectModelPath:  "models/mobilenet_ssd.pb",
		ObjectConfigPath: "models/mobilenet_ssd.pbtxt",
		ClassNames:       DefaultClassNames(),
		ConfidenceThresh: 0.5,
		Logger:           slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// DefaultClassNames returns the COCO class list used by the default
// MobileNet-SSD object model. Index 0 is background.
func DefaultClassNames() []string {
	return []string{
		"background", "person", "bicycle", "car", "motorcycle", "airplane",
		"bus", "train", "truck", "boat", "traffic light", "fire hydrant",
		"stop sign", "parking meter", "bench", "bird", "cat", "dog", "horse",
		"sheep", "cow", "elephant", "bear", "zebra", "giraffe", "backpack",
		"umbrella", "handbag", "tie", "suitcase", "frisbee", "skis",
		"snowboard", "sports ball", "kite", "baseball bat", "baseball glove",
		"skateboard", "surfboard", "tennis racket", "bottle", "wine glass",
		"cup", "fork", "knife", "spoon", "bowl", "banana", "apple",
		"sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza",
		"donut", "cake", "chair", "couch", "potted plant", "bed",
		"dining table", "toilet", "tv", "laptop", "mouse", "remote",
		"keyboard", "cell phone", "microwave", "oven", "toaster", "sink",
		"refrigerator", "book", "clock", "vase", "scissors", "teddy bear",
		"hair drier", "toothbrush",
	}
}
