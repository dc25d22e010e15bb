// ai-gateway serves the robot AI services over HTTP and WebSocket.
//
// Backends are selected per service: mock backends by default, Google Cloud
// for speech when GOOGLE_API_KEY is set, OpenCV for vision when model paths
// are given.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-roboai/internal/config"
	"github.com/teslashibe/go-roboai/internal/log"
	"github.com/teslashibe/go-roboai/pkg/asr"
	"github.com/teslashibe/go-roboai/pkg/gateway"
	"github.com/teslashibe/go-roboai/pkg/nav"
	"github.com/teslashibe/go-roboai/pkg/tts"
	"github.com/teslashibe/go-roboai/pkg/vision"
)

func main() {
	addr := flag.String("addr", config.GatewayAddr(), "listen address")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	language := flag.String("lang", config.Language(), "default speech language")
	voice := flag.String("voice", config.Voice(), "default TTS voice ID")
	faceModel := flag.String("face-model", config.FaceModelPath(""), "YuNet face model path (ONNX)")
	objectModel := flag.String("object-model", config.ObjectModelPath(""), "object detector weights path")
	objectConfig := flag.String("object-config", config.ObjectConfigPath(""), "object detector config path")
	flag.Parse()

	log.Init(*logLevel)
	logger := log.L()

	services := gateway.Services{}

	ctx := context.Background()

	apiKey := config.GoogleAPIKey()
	if apiKey != "" {
		recognizer, err := asr.NewGoogle(ctx,
			asr.WithConfigLanguage(*language),
			asr.WithAPIKey(apiKey),
			asr.WithLogger(logger),
		)
		if err != nil {
			logger.Error("asr init failed", "error", err)
			os.Exit(1)
		}
		defer recognizer.Close()
		services.ASR = recognizer

		synth, err := tts.NewGoogle(ctx,
			tts.WithDefaultLanguage(*language),
			tts.WithDefaultVoice(*voice),
			tts.WithAPIKey(apiKey),
			tts.WithLogger(logger),
		)
		if err != nil {
			logger.Error("tts init failed", "error", err)
			os.Exit(1)
		}
		defer synth.Close()
		services.TTS = synth
	} else {
		logger.Warn("GOOGLE_API_KEY not set, using mock speech backends")
		services.ASR = asr.NewMock()
		services.TTS = tts.NewMock()
	}

	if *faceModel != "" || *objectModel != "" {
		camera, err := vision.NewOpenCV(
			vision.WithFaceModel(*faceModel),
			vision.WithObjectModel(*objectModel, *objectConfig),
			vision.WithLogger(logger),
		)
		if err != nil {
			logger.Error("vision init failed", "error", err)
			os.Exit(1)
		}
		defer camera.Close()
		services.Vision = camera
	} else {
		logger.Warn("no vision models given, using mock vision backend")
		services.Vision = vision.NewMock()
	}

	navigator, err := nav.NewSimulator(nav.WithLogger(logger))
	if err != nil {
		logger.Error("nav init failed", "error", err)
		os.Exit(1)
	}
	defer navigator.Close()
	services.Nav = navigator

	server := gateway.NewServer(services, logger)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		_ = server.Shutdown()
	}()

	if err := server.Listen(*addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
