// Package gateway exposes the AI service contracts over HTTP.
//
// Each service operation maps 1:1 to a route; no semantics are added on the
// wire. The error taxonomy maps onto status codes: 400 invalid input, 503
// service unavailable, 200 with a null payload for recoverable absence.
// Client implements the same contracts against a remote gateway, so local
// and remote backends are interchangeable.
package gateway

import (
	"github.com/teslashibe/go-roboai/pkg/nav"
	"github.com/teslashibe/go-roboai/pkg/vision"
)

// RecognizeRequest is the ASR recognize payload. Audio is base64 on the wire.
type RecognizeRequest struct {
	Audio    []byte `json:"audio"`
	LangCode string `json:"lang_code,omitempty"`
}

// RecognizeResponse carries the transcript, or a null text on no recognition.
type RecognizeResponse struct {
	Text       *string `json:"text"`
	Confidence float64 `json:"confidence,omitempty"`
	Language   string  `json:"language,omitempty"`
}

// SynthesizeRequest is the TTS synthesize payload.
type SynthesizeRequest struct {
	Text     string `json:"text"`
	LangCode string `json:"lang_code,omitempty"`
	VoiceID  string `json:"voice_id,omitempty"`
}

// SynthesizeResponse carries audio, or null audio for an unsupported pair.
type SynthesizeResponse struct {
	Audio      []byte `json:"audio"`
	Encoding   string `json:"encoding,omitempty"`
	SampleRate int    `json:"sample_rate,omitempty"`
	Channels   int    `json:"channels,omitempty"`
	BitDepth   int    `json:"bit_depth,omitempty"`
	CharCount  int    `json:"char_count,omitempty"`
	DurationMs int64  `json:"duration_ms,omitempty"`
}

// FramePayload is an image buffer on the wire. Data is base64 row-major
// pixels, 8 bits per channel.
type FramePayload struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Channels int    `json:"channels"`
	Data     []byte `json:"data"`
}

// Frame converts the payload into the vision value type.
func (p FramePayload) Frame() *vision.ImageFrame {
	return &vision.ImageFrame{
		Width:    p.Width,
		Height:   p.Height,
		Channels: p.Channels,
		Pix:      p.Data,
	}
}

// DetectRequest is the payload for both vision operations.
// ObjectList is ignored by the faces route.
type DetectRequest struct {
	Frame      FramePayload `json:"frame"`
	ObjectList []string     `json:"object_list,omitempty"`
}

// DetectResponse carries zero or more detections.
type DetectResponse struct {
	Detections []vision.Detection `json:"detections"`
}

// GoalRequest submits a navigation goal.
type GoalRequest struct {
	Target nav.RobotPose `json:"target"`
}

// GoalResponse reports goal acceptance and the resulting state.
type GoalResponse struct {
	Accepted bool      `json:"accepted"`
	State    nav.State `json:"state"`
}

// CancelResponse reports the cancel outcome and the resulting state.
type CancelResponse struct {
	Cancelled bool      `json:"cancelled"`
	State     nav.State `json:"state"`
}

// MapResponse carries the occupancy grid, or null when no map is loaded.
type MapResponse struct {
	Map *nav.OccupancyGrid `json:"map"`
}

// StateResponse carries the navigation state machine state.
type StateResponse struct {
	State nav.State `json:"state"`
}

// ErrorResponse is the uniform error body for 4xx/5xx responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
