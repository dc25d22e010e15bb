package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/teslashibe/go-roboai/pkg/asr"
	"github.com/teslashibe/go-roboai/pkg/nav"
	"github.com/teslashibe/go-roboai/pkg/status"
	"github.com/teslashibe/go-roboai/pkg/tts"
	"github.com/teslashibe/go-roboai/pkg/vision"
)

// Services bundles the four AI services the gateway serves.
type Services struct {
	ASR    asr.Service
	TTS    tts.Service
	Vision vision.Service
	Nav    nav.Service
}

// Server serves the AI service contracts over HTTP and WebSocket.
type Server struct {
	app      *fiber.App
	services Services
	agg      *status.Aggregator
	logger   *slog.Logger

	// watchInterval is how often the status stream polls.
	watchInterval time.Duration
}

// NewServer wires the services into a fiber application.
func NewServer(services Services, logger *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "go-roboai gateway",
		DisableStartupMessage: true,
		// Frames are large; a 720p BGR frame alone is ~2.7MB before base64.
		BodyLimit: 16 * 1024 * 1024,
	})

	s := &Server{
		app:      app,
		services: services,
		agg: status.NewAggregator(
			services.ASR,
			services.TTS,
			services.Vision,
			services.Nav,
		),
		logger:        logger.With("component", "gateway"),
		watchInterval: time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes registers the 1:1 operation routes.
func (s *Server) setupRoutes() {
	s.app.Use(func(c *fiber.Ctx) error {
		c.Locals("request_id", uuid.NewString())
		return c.Next()
	})

	api := s.app.Group("/api")

	api.Post("/asr/recognize", s.handleRecognize)
	api.Get("/asr/status", s.handleServiceStatus(s.services.ASR))

	api.Post("/tts/synthesize", s.handleSynthesize)
	api.Get("/tts/status", s.handleServiceStatus(s.services.TTS))

	api.Post("/vision/faces", s.handleDetectFaces)
	api.Post("/vision/objects", s.handleRecognizeObjects)
	api.Get("/vision/status", s.handleServiceStatus(s.services.Vision))

	api.Get("/nav/pose", s.handlePose)
	api.Post("/nav/goal", s.handleGoal)
	api.Post("/nav/cancel", s.handleCancel)
	api.Get("/nav/map", s.handleMap)
	api.Get("/nav/state", s.handleNavState)
	api.Get("/nav/status", s.handleServiceStatus(s.services.Nav))

	api.Get("/status", s.handleComposite)

	// WebSocket status stream: pushes the composite on every change.
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get("/ws/status", websocket.New(s.streamStatus))
}

// streamStatus runs one aggregator watch per connection.
func (s *Server) streamStatus(conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A write failure means the peer is gone; stop the watch.
	s.agg.Watch(ctx, s.watchInterval, func(c status.Composite) {
		if err := conn.WriteJSON(c); err != nil {
			s.logger.Debug("status stream closed", "error", err)
			cancel()
		}
	})
}

// Listen serves on the given address until the listener fails.
func (s *Server) Listen(addr string) error {
	s.logger.Info("gateway listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber application for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
