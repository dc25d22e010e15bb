package nav

import (
	"log/slog"
	"time"
)

// Config holds simulator configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// Speed is the straight-line travel speed in m/s.
	Speed float64

	// TickInterval is how often the simulated pose advances.
	TickInterval time.Duration

	// GoalTolerance is the arrival radius in meters.
	GoalTolerance float64

	// InitialPose is the pose reported before any goal completes.
	InitialPose RobotPose

	// Grid is the occupancy grid used for reachability checks.
	// With no grid, every finite goal is accepted.
	Grid *OccupancyGrid

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring the simulator.
type Option func(*Config)

// WithSpeed sets the travel speed in m/s.
func WithSpeed(speed float64) Option {
	return func(c *Config) {
		c.Speed = speed
	}
}

// WithTickInterval sets the simulation step interval.
func WithTickInterval(d time.Duration) Option {
	return func(c *Config) {
		c.TickInterval = d
	}
}

// WithGoalTolerance sets the arrival radius in meters.
func WithGoalTolerance(tolerance float64) Option {
	return func(c *Config) {
		c.GoalTolerance = tolerance
	}
}

// WithInitialPose sets the starting pose.
func WithInitialPose(pose RobotPose) Option {
	return func(c *Config) {
		c.InitialPose = pose
	}
}

// WithGrid loads an occupancy grid for reachability checks and Map.
func WithGrid(grid *OccupancyGrid) Option {
	return func(c *Config) {
		c.Grid = grid
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns sensible defaults for a desktop robot.
func DefaultConfig() *Config {
	return &Config{
		Speed:         0.5,
		TickInterval:  20 * time.Millisecond,
		GoalTolerance: 0.05,
		Logger:        slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
