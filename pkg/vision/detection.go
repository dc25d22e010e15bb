package vision

import "fmt"

// BoundingBox is an axis-aligned pixel rectangle, origin top-left.
// Valid boxes satisfy XMin <= XMax and YMin <= YMax; constructors and
// deserializers should check with Valid. Treat values as immutable.
type BoundingBox struct {
	XMin int `json:"x_min"`
	YMin int `json:"y_min"`
	XMax int `json:"x_max"`
	YMax int `json:"y_max"`
}

// Valid reports whether the box corners are ordered.
func (b BoundingBox) Valid() bool {
	return b.XMin <= b.XMax && b.YMin <= b.YMax
}

// Width returns the horizontal extent in pixels.
func (b BoundingBox) Width() int { return b.XMax - b.XMin }

// Height returns the vertical extent in pixels.
func (b BoundingBox) Height() int { return b.YMax - b.YMin }

// Area returns the box area in pixels.
func (b BoundingBox) Area() int { return b.Width() * b.Height() }

// Center returns the box midpoint.
func (b BoundingBox) Center() (x, y int) {
	return b.XMin + b.Width()/2, b.YMin + b.Height()/2
}

// String renders the box for logs.
func (b BoundingBox) String() string {
	return fmt.Sprintf("BoundingBox(%d,%d - %d,%d)", b.XMin, b.YMin, b.XMax, b.YMax)
}

// Detection is a single recognized region in an image.
// Confidence is conventionally in [0, 1]. Label identifies what was detected
// ("face" for face detection, an object class otherwise).
type Detection struct {
	Box        BoundingBox `json:"bbox"`
	Confidence float64     `json:"confidence"`
	Label      string      `json:"label"`
}

// FilterLabels returns the detections whose label is in the allow list.
// A nil or empty list passes everything through unchanged.
func FilterLabels(dets []Detection, labels []string) []Detection {
	if len(labels) == 0 {
		return dets
	}
	allowed := make(map[string]bool, len(labels))
	for _, l := range labels {
		allowed[l] = true
	}
	filtered := make([]Detection, 0, len(dets))
	for _, d := range dets {
		if allowed[d.Label] {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// SelectBest picks the strongest detection by confidence and area.
// Returns nil for an empty slice.
func SelectBest(dets []Detection) *Detection {
	if len(dets) == 0 {
		return nil
	}
	if len(dets) == 1 {
		return &dets[0]
	}

	maxArea := 0
	for _, d := range dets {
		if d.Box.Area() > maxArea {
			maxArea = d.Box.Area()
		}
	}

	bestScore := -1.0
	var best *Detection
	for i := range dets {
		score := dets[i].Confidence * 0.7
		if maxArea > 0 {
			score += float64(dets[i].Box.Area()) / float64(maxArea) * 0.3
		}
		if score > bestScore {
			bestScore = score
			best = &dets[i]
		}
	}
	return best
}
