package nav

import (
	"context"
	"sync"

	"github.com/teslashibe/go-roboai/pkg/status"
)

// Mock implements Service for testing.
// Unset function fields fall back to a trivial always-accepting navigator
// with an in-memory state machine.
type Mock struct {
	// CurrentPoseFunc overrides CurrentPose.
	CurrentPoseFunc func() RobotPose

	// SetGoalFunc overrides SetGoal. The default accepts finite poses and
	// jumps straight to the target (instant navigation success).
	SetGoalFunc func(ctx context.Context, target RobotPose) (bool, error)

	// MapFunc overrides Map. The default returns nil (no map loaded).
	MapFunc func() *OccupancyGrid

	// StatusFunc overrides Status. The default reports ready.
	StatusFunc func() status.ServiceStatus

	mu    sync.Mutex
	pose  RobotPose
	state State
}

// NewMock creates a mock navigator at the origin, idle.
func NewMock() *Mock {
	return &Mock{state: StateIdle}
}

// CurrentPose returns the mock pose.
func (m *Mock) CurrentPose() RobotPose {
	if m.CurrentPoseFunc != nil {
		return m.CurrentPoseFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pose
}

// SetGoal accepts finite poses and teleports to the target.
func (m *Mock) SetGoal(ctx context.Context, target RobotPose) (bool, error) {
	if m.SetGoalFunc != nil {
		return m.SetGoalFunc(ctx, target)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !target.Valid() {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateNavigating
	m.pose = target
	return true, nil
}

// Cancel moves Navigating to Cancelled, no-op success otherwise.
func (m *Mock) Cancel() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateNavigating {
		m.state = StateCancelled
	}
	return true
}

// Finish moves the mock from Navigating to the given terminal state.
// Test helper for exercising caller-side handling of outcomes.
func (m *Mock) Finish(outcome State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateNavigating {
		m.state = outcome
	}
}

// State returns the mock state.
func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Map returns MapFunc's grid, or nil.
func (m *Mock) Map() *OccupancyGrid {
	if m.MapFunc != nil {
		return m.MapFunc()
	}
	return nil
}

// Status calls StatusFunc, defaulting to ready.
func (m *Mock) Status() status.ServiceStatus {
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	return status.Ok(ServiceName)
}

// Verify Mock implements Service at compile time.
var _ Service = (*Mock)(nil)
