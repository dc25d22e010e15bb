package nav

import (
	"fmt"
	"math"
)

// RobotPose is the robot's 2D position and orientation in the world frame.
// X and Y are meters; Theta is radians and unconstrained in range — callers
// normalize when they need a canonical angle. Treat values as immutable.
type RobotPose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

// Valid reports whether all components are finite.
func (p RobotPose) Valid() bool {
	for _, v := range []float64{p.X, p.Y, p.Theta} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// DistanceTo returns the Euclidean distance to another pose in meters.
func (p RobotPose) DistanceTo(other RobotPose) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// NormalizedTheta returns the orientation wrapped to (-pi, pi].
func (p RobotPose) NormalizedTheta() float64 {
	theta := math.Mod(p.Theta, 2*math.Pi)
	if theta > math.Pi {
		theta -= 2 * math.Pi
	}
	if theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}

// String renders the pose for logs.
func (p RobotPose) String() string {
	return fmt.Sprintf("RobotPose(x=%.2f, y=%.2f, theta=%.2f)", p.X, p.Y, p.Theta)
}
