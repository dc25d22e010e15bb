// Package config provides configuration helpers for go-roboai commands.
package config

import (
	"fmt"
	"os"
)

// Defaults shared by the command binaries.
const (
	DefaultGatewayPort = "8090"
	DefaultLanguage    = "ar-SA"
	DefaultVoice       = "default_female"
)

// GatewayAddr returns the gateway listen address from GATEWAY_ADDR,
// falling back to ":8090".
func GatewayAddr() string {
	if addr := os.Getenv("GATEWAY_ADDR"); addr != "" {
		return addr
	}
	return ":" + DefaultGatewayPort
}

// GatewayURL returns the gateway base URL for a host.
func GatewayURL(host string) string {
	return fmt.Sprintf("http://%s:%s", host, DefaultGatewayPort)
}

// Language returns the default speech language from ROBOAI_LANG or the
// built-in default.
func Language() string {
	if lang := os.Getenv("ROBOAI_LANG"); lang != "" {
		return lang
	}
	return DefaultLanguage
}

// Voice returns the default voice ID from ROBOAI_VOICE or the built-in
// default.
func Voice() string {
	if voice := os.Getenv("ROBOAI_VOICE"); voice != "" {
		return voice
	}
	return DefaultVoice
}

// GoogleAPIKey returns the Google Cloud API key from GOOGLE_API_KEY.
// Empty when unset; backends fall back to their token source.
func GoogleAPIKey() string {
	return os.Getenv("GOOGLE_API_KEY")
}

// GoogleAPIKeyRequired returns the Google Cloud API key from GOOGLE_API_KEY.
// Exits with usage help if not set.
func GoogleAPIKeyRequired() string {
	key := os.Getenv("GOOGLE_API_KEY")
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: GOOGLE_API_KEY environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: GOOGLE_API_KEY=... go run ./cmd/...")
		os.Exit(1)
	}
	return key
}

// FaceModelPath returns the YuNet model path from VISION_FACE_MODEL.
// Falls back to the provided default if not set.
func FaceModelPath(defaultPath string) string {
	if p := os.Getenv("VISION_FACE_MODEL"); p != "" {
		return p
	}
	return defaultPath
}

// ObjectModelPath returns the detector weights path from VISION_OBJECT_MODEL.
// Falls back to the provided default if not set.
func ObjectModelPath(defaultPath string) string {
	if p := os.Getenv("VISION_OBJECT_MODEL"); p != "" {
		return p
	}
	return defaultPath
}

// ObjectConfigPath returns the detector config path from VISION_OBJECT_CONFIG.
// Falls back to the provided default if not set.
func ObjectConfigPath(defaultPath string) string {
	if p := os.Getenv("VISION_OBJECT_CONFIG"); p != "" {
		return p
	}
	return defaultPath
}
