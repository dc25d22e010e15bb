package nav_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/teslashibe/go-roboai/pkg/nav"
)

func newFastSimulator(t *testing.T, opts ...nav.Option) *nav.Simulator {
	t.Helper()
	base := []nav.Option{
		nav.WithSpeed(100),
		nav.WithTickInterval(time.Millisecond),
		nav.WithGoalTolerance(0.05),
	}
	sim, err := nav.NewSimulator(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	t.Cleanup(func() { sim.Close() })
	return sim
}

func waitForState(t *testing.T, sim *nav.Simulator, want nav.State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sim.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %s, still %s", want, sim.State())
}

func TestSimulatorStateMachine(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted goal transitions to navigating then succeeded", func(t *testing.T) {
		sim := newFastSimulator(t)
		ok, err := sim.SetGoal(ctx, nav.RobotPose{X: 1, Y: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("expected goal accepted")
		}
		// Accepting moves the machine to navigating immediately.
		if s := sim.State(); s != nav.StateNavigating && s != nav.StateSucceeded {
			t.Errorf("unexpected state after accept: %s", s)
		}

		waitForState(t, sim, nav.StateSucceeded)

		pose := sim.CurrentPose()
		if math.Hypot(pose.X-1, pose.Y-1) > 0.05 {
			t.Errorf("expected pose near goal, got %s", pose.String())
		}
	})

	t.Run("cancel transitions to cancelled and allows a new goal", func(t *testing.T) {
		sim := newFastSimulator(t, nav.WithSpeed(0.01))
		ok, _ := sim.SetGoal(ctx, nav.RobotPose{X: 100, Y: 100})
		if !ok {
			t.Fatal("expected goal accepted")
		}
		if !sim.Cancel() {
			t.Error("expected cancel to report true")
		}
		if sim.State() != nav.StateCancelled {
			t.Errorf("expected cancelled, got %s", sim.State())
		}

		// The state machine re-enters navigating from a terminal state.
		ok, err := sim.SetGoal(ctx, nav.RobotPose{X: 0.001, Y: 0})
		if err != nil || !ok {
			t.Fatalf("expected re-entry goal accepted, ok=%v err=%v", ok, err)
		}
	})

	t.Run("cancel while idle is a no-op success", func(t *testing.T) {
		sim := newFastSimulator(t)
		if !sim.Cancel() {
			t.Error("expected no-op cancel to report true")
		}
		if sim.State() != nav.StateIdle {
			t.Errorf("expected idle, got %s", sim.State())
		}
	})

	t.Run("non-finite goal is rejected not an error", func(t *testing.T) {
		sim := newFastSimulator(t)
		ok, err := sim.SetGoal(ctx, nav.RobotPose{X: math.NaN()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected rejection")
		}
		if sim.State() != nav.StateIdle {
			t.Errorf("rejected goal must not change state, got %s", sim.State())
		}
	})

	t.Run("goal replacement preempts the active goal", func(t *testing.T) {
		sim := newFastSimulator(t, nav.WithSpeed(0.01))
		sim.SetGoal(ctx, nav.RobotPose{X: 100, Y: 0})

		ok, err := sim.SetGoal(ctx, nav.RobotPose{X: 0.001, Y: 0})
		if err != nil || !ok {
			t.Fatalf("expected replacement accepted, ok=%v err=%v", ok, err)
		}
		if sim.State() != nav.StateNavigating && sim.State() != nav.StateSucceeded {
			t.Errorf("unexpected state after replacement: %s", sim.State())
		}
	})
}

func TestSimulatorGrid(t *testing.T) {
	ctx := context.Background()

	grid := nav.NewGrid(10, 10, 1.0)
	grid.Set(5, 5, nav.CellFree)

	t.Run("grid gates goal acceptance", func(t *testing.T) {
		sim := newFastSimulator(t, nav.WithGrid(grid))

		ok, err := sim.SetGoal(ctx, nav.RobotPose{X: 5.5, Y: 5.5})
		if err != nil || !ok {
			t.Errorf("expected free-cell goal accepted, ok=%v err=%v", ok, err)
		}

		ok, err = sim.SetGoal(ctx, nav.RobotPose{X: 0.5, Y: 0.5})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected unknown-cell goal rejected")
		}
	})

	t.Run("map is a defensive copy", func(t *testing.T) {
		sim := newFastSimulator(t, nav.WithGrid(grid))
		m := sim.Map()
		if m == nil {
			t.Fatal("expected a map")
		}
		m.Set(5, 5, nav.CellOccupied)
		if sim.Map().At(5, 5) != nav.CellFree {
			t.Error("map mutation leaked into the service")
		}
	})

	t.Run("no grid means no map", func(t *testing.T) {
		sim := newFastSimulator(t)
		if sim.Map() != nil {
			t.Error("expected nil map when none loaded")
		}
	})
}

func TestSimulatorStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("status idempotent and ready", func(t *testing.T) {
		sim := newFastSimulator(t)
		if sim.Status() != sim.Status() {
			t.Error("expected equal statuses without state change")
		}
		if s := sim.Status(); !s.Ready || s.ServiceName != nav.ServiceName {
			t.Errorf("unexpected status: %+v", s)
		}
	})

	t.Run("closed simulator fails fast", func(t *testing.T) {
		sim := newFastSimulator(t)
		sim.Close()

		if s := sim.Status(); s.Ready {
			t.Error("expected not ready after close")
		}
		_, err := sim.SetGoal(ctx, nav.RobotPose{X: 1})
		if !errors.Is(err, nav.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("cancelled context rejects submission", func(t *testing.T) {
		sim := newFastSimulator(t)
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := sim.SetGoal(cancelled, nav.RobotPose{X: 1})
		if err == nil {
			t.Error("expected context error")
		}
	})
}

func TestMockNavigator(t *testing.T) {
	ctx := context.Background()

	t.Run("default accepts and teleports", func(t *testing.T) {
		m := nav.NewMock()
		ok, err := m.SetGoal(ctx, nav.RobotPose{X: 2, Y: 3})
		if err != nil || !ok {
			t.Fatalf("expected accept, ok=%v err=%v", ok, err)
		}
		if m.State() != nav.StateNavigating {
			t.Errorf("expected navigating, got %s", m.State())
		}
		if m.CurrentPose().X != 2 {
			t.Errorf("unexpected pose: %s", m.CurrentPose().String())
		}

		m.Finish(nav.StateSucceeded)
		if m.State() != nav.StateSucceeded {
			t.Errorf("expected succeeded, got %s", m.State())
		}
	})

	t.Run("cancel semantics match the contract", func(t *testing.T) {
		m := nav.NewMock()
		if !m.Cancel() {
			t.Error("idle cancel must report true")
		}
		m.SetGoal(ctx, nav.RobotPose{X: 1})
		if !m.Cancel() || m.State() != nav.StateCancelled {
			t.Errorf("expected cancelled, got %s", m.State())
		}
	})
}
