package gateway

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/teslashibe/go-roboai/pkg/asr"
	"github.com/teslashibe/go-roboai/pkg/nav"
	"github.com/teslashibe/go-roboai/pkg/status"
	"github.com/teslashibe/go-roboai/pkg/tts"
	"github.com/teslashibe/go-roboai/pkg/vision"
)

func (s *Server) handleRecognize(c *fiber.Ctx) error {
	var req RecognizeRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err)
	}

	var opts []asr.RecognizeOption
	if req.LangCode != "" {
		opts = append(opts, asr.WithLanguage(req.LangCode))
	}

	result, err := s.services.ASR.Recognize(c.Context(), req.Audio, opts...)
	if err != nil {
		return s.failMapped(c, err)
	}
	if result == nil {
		return c.JSON(RecognizeResponse{Text: nil})
	}
	return c.JSON(RecognizeResponse{
		Text:       &result.Text,
		Confidence: result.Confidence,
		Language:   result.Language,
	})
}

func (s *Server) handleSynthesize(c *fiber.Ctx) error {
	var req SynthesizeRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err)
	}

	var opts []tts.SynthesizeOption
	if req.LangCode != "" {
		opts = append(opts, tts.WithLanguage(req.LangCode))
	}
	if req.VoiceID != "" {
		opts = append(opts, tts.WithVoiceID(req.VoiceID))
	}

	result, err := s.services.TTS.Synthesize(c.Context(), req.Text, opts...)
	if err != nil {
		return s.failMapped(c, err)
	}
	if result == nil {
		return c.JSON(SynthesizeResponse{Audio: nil})
	}
	return c.JSON(SynthesizeResponse{
		Audio:      result.Audio,
		Encoding:   string(result.Format.Encoding),
		SampleRate: result.Format.SampleRate,
		Channels:   result.Format.Channels,
		BitDepth:   result.Format.BitDepth,
		CharCount:  result.CharCount,
		DurationMs: result.Duration.Milliseconds(),
	})
}

func (s *Server) handleDetectFaces(c *fiber.Ctx) error {
	var req DetectRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err)
	}

	dets, err := s.services.Vision.DetectFaces(c.Context(), req.Frame.Frame())
	if err != nil {
		return s.failMapped(c, err)
	}
	return c.JSON(DetectResponse{Detections: dets})
}

func (s *Server) handleRecognizeObjects(c *fiber.Ctx) error {
	var req DetectRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err)
	}

	dets, err := s.services.Vision.RecognizeObjects(c.Context(), req.Frame.Frame(), req.ObjectList)
	if err != nil {
		return s.failMapped(c, err)
	}
	return c.JSON(DetectResponse{Detections: dets})
}

func (s *Server) handlePose(c *fiber.Ctx) error {
	return c.JSON(s.services.Nav.CurrentPose())
}

func (s *Server) handleGoal(c *fiber.Ctx) error {
	var req GoalRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, fiber.StatusBadRequest, err)
	}

	accepted, err := s.services.Nav.SetGoal(c.Context(), req.Target)
	if err != nil {
		return s.failMapped(c, err)
	}
	return c.JSON(GoalResponse{Accepted: accepted, State: s.services.Nav.State()})
}

func (s *Server) handleCancel(c *fiber.Ctx) error {
	cancelled := s.services.Nav.Cancel()
	return c.JSON(CancelResponse{Cancelled: cancelled, State: s.services.Nav.State()})
}

func (s *Server) handleMap(c *fiber.Ctx) error {
	return c.JSON(MapResponse{Map: s.services.Nav.Map()})
}

func (s *Server) handleNavState(c *fiber.Ctx) error {
	return c.JSON(StateResponse{State: s.services.Nav.State()})
}

func (s *Server) handleServiceStatus(r status.Reporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(r.Status())
	}
}

func (s *Server) handleComposite(c *fiber.Ctx) error {
	return c.JSON(s.agg.Check())
}

// fail writes the uniform error body with the request ID.
func (s *Server) fail(c *fiber.Ctx, code int, err error) error {
	reqID, _ := c.Locals("request_id").(string)
	s.logger.Warn("request failed",
		"path", c.Path(),
		"status", code,
		"request_id", reqID,
		"error", err,
	)
	return c.Status(code).JSON(ErrorResponse{Error: err.Error(), RequestID: reqID})
}

// failMapped maps the module error taxonomy onto HTTP status codes.
func (s *Server) failMapped(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, vision.ErrInvalidImage),
		errors.Is(err, tts.ErrEmptyText),
		errors.Is(err, tts.ErrTextTooLong),
		errors.Is(err, asr.ErrBadAudio):
		return s.fail(c, fiber.StatusBadRequest, err)
	case errors.Is(err, asr.ErrServiceUnavailable),
		errors.Is(err, tts.ErrServiceUnavailable),
		errors.Is(err, vision.ErrServiceUnavailable),
		errors.Is(err, nav.ErrServiceUnavailable):
		return s.fail(c, fiber.StatusServiceUnavailable, err)
	default:
		return s.fail(c, fiber.StatusInternalServerError, err)
	}
}
