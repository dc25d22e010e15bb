// Package vision defines the computer vision service contract.
//
// The package separates the contract (Service, ImageFrame, Detection) from
// its backends. Two backends ship with the module: OpenCV (gocv-based face
// and object detection) and Mock (function-field test double). Both satisfy
// Service, so callers switch backends without code changes.
//
// Result semantics follow the module-wide error taxonomy: an empty detection
// slice means "nothing found" and is never an error, while a malformed image
// buffer always surfaces ErrInvalidImage rather than a silent empty result.
package vision

import (
	"context"

	"github.com/teslashibe/go-roboai/pkg/status"
)

// ServiceName identifies the vision service in status reports.
const ServiceName = "vision"

// Service is the computer vision contract.
//
// Implementations must be safe for concurrent callers: backends whose
// underlying inference engine is not reentrant serialize internally.
type Service interface {
	// DetectFaces finds human faces in the frame. An empty slice means no
	// faces were found. Detection order carries no meaning.
	DetectFaces(ctx context.Context, frame *ImageFrame) ([]Detection, error)

	// RecognizeObjects detects objects in the frame. A nil or empty labels
	// slice requests open-vocabulary detection; otherwise only detections
	// whose label is in the slice are returned. No match yields an empty
	// slice, not an error.
	RecognizeObjects(ctx context.Context, frame *ImageFrame, labels []string) ([]Detection, error)

	// Status reports whether the detector models are loaded and usable.
	Status() status.ServiceStatus

	// Close releases detector resources.
	Close() error
}
