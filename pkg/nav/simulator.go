package nav

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-roboai/pkg/status"
)

// Simulator implements Service with an in-memory kinematic model.
//
// A background goroutine advances the pose toward the active goal in straight
// lines at Config.Speed. Goals are identified by UUID so a replacing goal
// cleanly detaches the previous goal's goroutine. Used as the default backend
// in tests and demos, and as the reference for the replace preemption policy.
type Simulator struct {
	cfg    *Config
	logger *slog.Logger

	mu     sync.Mutex
	pose   RobotPose
	state  State
	goalID string // empty when no goal is active
	target RobotPose
	grid   *OccupancyGrid
	closed bool
}

// NewSimulator creates a navigation simulator.
func NewSimulator(opts ...Option) (*Simulator, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if cfg.Speed <= 0 {
		return nil, fmt.Errorf("nav: non-positive speed %f", cfg.Speed)
	}
	if cfg.Grid != nil {
		if err := cfg.Grid.Validate(); err != nil {
			return nil, err
		}
	}

	return &Simulator{
		cfg:    cfg,
		logger: cfg.Logger.With("component", "nav.simulator"),
		pose:   cfg.InitialPose,
		state:  StateIdle,
		grid:   cfg.Grid,
	}, nil
}

// CurrentPose returns the latest simulated pose.
func (s *Simulator) CurrentPose() RobotPose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose
}

// State returns the current state machine state.
func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetGoal submits a goal. Non-finite poses and poses on non-free grid cells
// are rejected with false. An accepted goal while navigating replaces the
// active one; the replaced goal's outcome is Cancelled.
func (s *Simulator) SetGoal(ctx context.Context, target RobotPose) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, fmt.Errorf("%w: %v", ErrServiceUnavailable, ErrClosed)
	}
	if !target.Valid() {
		s.logger.Warn("goal rejected", "reason", "non-finite pose")
		return false, nil
	}
	if s.grid != nil && !s.grid.Reachable(target) {
		s.logger.Warn("goal rejected", "reason", "unreachable", "target", target.String())
		return false, nil
	}

	if s.state == StateNavigating {
		s.logger.Info("replacing active goal", "old_goal", s.goalID)
	}

	id := uuid.NewString()
	s.goalID = id
	s.target = target
	s.state = StateNavigating
	s.logger.Info("goal accepted", "goal", id, "target", target.String())

	go s.run(id, target)
	return true, nil
}

// Cancel stops the active goal. It is an idempotent no-op success when
// nothing is navigating.
func (s *Simulator) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNavigating {
		return true
	}

	s.logger.Info("navigation cancelled", "goal", s.goalID)
	s.goalID = ""
	s.state = StateCancelled
	return true
}

// Map returns a copy of the loaded grid, or nil when no map is loaded.
func (s *Simulator) Map() *OccupancyGrid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Clone()
}

// Status reports readiness. The simulator is ready until closed.
func (s *Simulator) Status() status.ServiceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return status.Unavailable(ServiceName, "service closed")
	}
	return status.Ok(ServiceName)
}

// Close shuts the simulator down. Any active goal fails.
func (s *Simulator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.state == StateNavigating {
		s.goalID = ""
		s.state = StateFailed
	}
	return nil
}

// run drives the pose toward target until arrival or detachment.
// Detachment happens when the goal is cancelled, replaced or the simulator
// closes; the goroutine then exits without touching the state machine.
func (s *Simulator) run(goalID string, target RobotPose) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	step := s.cfg.Speed * s.cfg.TickInterval.Seconds()

	for range ticker.C {
		s.mu.Lock()
		if s.goalID != goalID {
			s.mu.Unlock()
			return
		}

		remaining := s.pose.DistanceTo(target)
		if remaining <= s.cfg.GoalTolerance {
			s.pose.X = target.X
			s.pose.Y = target.Y
			s.pose.Theta = target.Theta
			s.goalID = ""
			s.state = StateSucceeded
			s.logger.Info("goal reached", "goal", goalID, "pose", s.pose.String())
			s.mu.Unlock()
			return
		}

		heading := math.Atan2(target.Y-s.pose.Y, target.X-s.pose.X)
		advance := math.Min(step, remaining)
		s.pose.X += advance * math.Cos(heading)
		s.pose.Y += advance * math.Sin(heading)
		s.pose.Theta = heading
		s.mu.Unlock()
	}
}

// Verify Simulator implements Service at compile time.
var _ Service = (*Simulator)(nil)
