// Package nav defines the navigation service contract.
//
// Navigation is a state machine over goals:
//
//	Idle -> Navigating -> {Succeeded, Cancelled, Failed}
//
// Terminal states are re-entrant: an accepted goal from any non-navigating
// state moves the machine back to Navigating.
//
// Preemption policy: replace. A goal accepted while navigating cancels the
// active goal (its outcome is Cancelled) and the new goal becomes active.
// Every Service implementation in this module follows this policy.
package nav

import (
	"context"

	"github.com/teslashibe/go-roboai/pkg/status"
)

// ServiceName identifies the navigation service in status reports.
const ServiceName = "nav"

// State is the navigation state machine state.
type State string

const (
	StateIdle       State = "idle"
	StateNavigating State = "navigating"
	StateSucceeded  State = "succeeded"
	StateCancelled  State = "cancelled"
	StateFailed     State = "failed"
)

// Service is the navigation contract.
// Implementations must be safe for concurrent callers.
type Service interface {
	// CurrentPose returns the latest localization estimate. It is
	// non-blocking and always available; degraded localization is surfaced
	// through Status, never hidden in the pose value.
	CurrentPose() RobotPose

	// SetGoal submits a navigation goal. It returns false when the goal is
	// rejected (non-finite pose, unreachable target) — rejection is not an
	// error. Submitting while navigating replaces the active goal.
	SetGoal(ctx context.Context, target RobotPose) (bool, error)

	// Cancel stops the active goal, moving the machine to Cancelled, and
	// returns true. Cancel is idempotent: with nothing to cancel it is a
	// no-op and still reports true.
	Cancel() bool

	// State returns the current state machine state.
	State() State

	// Map returns the current occupancy grid, or nil when no map is loaded.
	Map() *OccupancyGrid

	// Status reports whether localization and planning are usable.
	Status() status.ServiceStatus
}
