// aidemo runs the four AI services in-process and walks through one
// interaction with each: recognize a phrase, speak a reply, look for
// objects, and drive to a goal.
//
// Without credentials or models everything runs on mock backends, so the
// demo works on any machine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teslashibe/go-roboai/internal/config"
	"github.com/teslashibe/go-roboai/internal/log"
	"github.com/teslashibe/go-roboai/pkg/asr"
	"github.com/teslashibe/go-roboai/pkg/nav"
	"github.com/teslashibe/go-roboai/pkg/status"
	"github.com/teslashibe/go-roboai/pkg/tts"
	"github.com/teslashibe/go-roboai/pkg/vision"
)

func main() {
	language := flag.String("lang", config.Language(), "speech language")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*logLevel)
	logger := log.L()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Println("🤖 go-roboai demo")
	fmt.Println("=================")

	recognizer := asr.Transcribing("انطلق إلى المطبخ")
	synth := tts.NewMock(tts.WithDefaultLanguage(*language))
	camera := vision.NewMock()

	grid := nav.NewGrid(20, 20, 0.1)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			grid.Set(x, y, nav.CellFree)
		}
	}
	navigator, err := nav.NewSimulator(
		nav.WithGrid(grid),
		nav.WithLogger(logger),
	)
	if err != nil {
		fmt.Printf("❌ nav init: %v\n", err)
		os.Exit(1)
	}
	defer navigator.Close()

	// Readiness first: a broken service should be visible before use.
	agg := status.NewAggregator(recognizer, synth, camera, navigator)
	composite := agg.Check()
	if composite.Ready {
		fmt.Println("✅ all services ready")
	} else {
		for _, s := range composite.NotReady {
			fmt.Printf("⚠️  %s not ready: %s\n", s.ServiceName, s.Err)
		}
	}

	// 1. Speech recognition.
	fmt.Print("\n🎤 Recognizing... ")
	result, err := recognizer.Recognize(ctx, []byte{0x01, 0x02}, asr.WithLanguage(*language))
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	if result == nil {
		fmt.Println("(no speech)")
	} else {
		fmt.Printf("%q (%.0f%%)\n", result.Text, result.Confidence*100)
	}

	// 2. Speech synthesis.
	fmt.Print("🔊 Synthesizing reply... ")
	audio, err := synth.Synthesize(ctx, "حسنا، أنا في الطريق")
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	if audio == nil {
		fmt.Println("(language not supported)")
	} else {
		fmt.Printf("%d bytes, %s of audio\n", len(audio.Audio), audio.Duration.Round(time.Millisecond))
	}

	// 3. Vision.
	fmt.Print("👁️  Looking for a cup... ")
	frame := vision.NewFrame(640, 480, 3)
	detections, err := camera.RecognizeObjects(ctx, frame, []string{"cup"})
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	if len(detections) == 0 {
		fmt.Println("nothing found")
	} else {
		best := vision.SelectBest(detections)
		fmt.Printf("%s at %s\n", best.Label, best.Box)
	}

	// 4. Navigation.
	fmt.Print("🗺️  Driving to (1.0, 1.0)... ")
	accepted, err := navigator.SetGoal(ctx, nav.RobotPose{X: 1, Y: 1})
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	if !accepted {
		fmt.Println("goal rejected")
		return
	}
	for navigator.State() == nav.StateNavigating {
		select {
		case <-ctx.Done():
			navigator.Cancel()
			fmt.Println("cancelled")
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
	pose := navigator.CurrentPose()
	fmt.Printf("%s, arrived at (%.2f, %.2f)\n", navigator.State(), pose.X, pose.Y)

	fmt.Println("\n👋 Done")
}
