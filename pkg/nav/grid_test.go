package nav_test

import (
	"encoding/json"
	"testing"

	"github.com/teslashibe/go-roboai/pkg/nav"
)

func TestOccupancyGrid(t *testing.T) {
	t.Run("new grid is unknown everywhere", func(t *testing.T) {
		g := nav.NewGrid(4, 3, 0.1)
		if err := g.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for y := 0; y < 3; y++ {
			for x := 0; x < 4; x++ {
				if g.At(x, y) != nav.CellUnknown {
					t.Errorf("cell (%d,%d) not unknown", x, y)
				}
			}
		}
	})

	t.Run("out of bounds reads are unknown", func(t *testing.T) {
		g := nav.NewGrid(2, 2, 0.1)
		if g.At(-1, 0) != nav.CellUnknown || g.At(0, 5) != nav.CellUnknown {
			t.Error("expected unknown for out-of-bounds cells")
		}
	})

	t.Run("set and read back", func(t *testing.T) {
		g := nav.NewGrid(2, 2, 0.1)
		g.Set(1, 1, nav.CellOccupied)
		if g.At(1, 1) != nav.CellOccupied {
			t.Error("expected occupied cell")
		}
		g.Set(9, 9, nav.CellFree) // ignored
	})

	t.Run("validate rejects bad shapes", func(t *testing.T) {
		bad := []*nav.OccupancyGrid{
			{Width: 0, Height: 2, Resolution: 0.1},
			{Width: 2, Height: 2, Resolution: 0, Cells: make([]int8, 4)},
			{Width: 2, Height: 2, Resolution: 0.1, Cells: make([]int8, 3)},
		}
		for i, g := range bad {
			if err := g.Validate(); err == nil {
				t.Errorf("case %d: expected error", i)
			}
		}
	})

	t.Run("reachability uses cell state", func(t *testing.T) {
		g := nav.NewGrid(10, 10, 1.0)
		g.Set(2, 3, nav.CellFree)
		g.Set(4, 4, nav.CellOccupied)

		if !g.Reachable(nav.RobotPose{X: 2.5, Y: 3.5}) {
			t.Error("expected free cell reachable")
		}
		if g.Reachable(nav.RobotPose{X: 4.5, Y: 4.5}) {
			t.Error("expected occupied cell unreachable")
		}
		if g.Reachable(nav.RobotPose{X: 0.5, Y: 0.5}) {
			t.Error("expected unknown cell unreachable")
		}
		if g.Reachable(nav.RobotPose{X: -1, Y: -1}) {
			t.Error("expected out-of-grid pose unreachable")
		}
	})

	t.Run("clone does not share cells", func(t *testing.T) {
		g := nav.NewGrid(2, 2, 0.5)
		c := g.Clone()
		c.Set(0, 0, nav.CellOccupied)
		if g.At(0, 0) == nav.CellOccupied {
			t.Error("clone shares cell storage with original")
		}
		var nilGrid *nav.OccupancyGrid
		if nilGrid.Clone() != nil {
			t.Error("expected nil clone of nil grid")
		}
	})
}

func TestRobotPose(t *testing.T) {
	t.Run("JSON round trip", func(t *testing.T) {
		in := nav.RobotPose{X: 1.5, Y: -2.25, Theta: 3.14}
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var out nav.RobotPose
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if in != out {
			t.Errorf("round trip changed pose: %v != %v", in, out)
		}
	})

	t.Run("validity requires finiteness", func(t *testing.T) {
		if !(nav.RobotPose{X: 1, Y: 2, Theta: -9}).Valid() {
			t.Error("expected finite pose valid")
		}
		nan := nav.RobotPose{X: 0, Y: 0, Theta: 0}
		nan.X = nanValue()
		if nan.Valid() {
			t.Error("expected NaN pose invalid")
		}
	})

	t.Run("theta normalization", func(t *testing.T) {
		p := nav.RobotPose{Theta: 3 * 3.141592653589793}
		got := p.NormalizedTheta()
		if got < -3.1416 || got > 3.1416 {
			t.Errorf("theta %f not in (-pi, pi]", got)
		}
	})

	t.Run("distance", func(t *testing.T) {
		a := nav.RobotPose{X: 0, Y: 0}
		b := nav.RobotPose{X: 3, Y: 4}
		if d := a.DistanceTo(b); d != 5 {
			t.Errorf("expected distance 5, got %f", d)
		}
	})
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}
