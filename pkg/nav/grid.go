package nav

import "fmt"

// Occupancy cell values, following the ROS occupancy grid convention.
const (
	CellFree     int8 = 0
	CellOccupied int8 = 100 // 1..100 is occupancy probability
	CellUnknown  int8 = -1
)

// OccupancyGrid is a dense 2D map of the environment.
// Cells is row-major: the cell at (x, y) is Cells[y*Width+x]. Resolution is
// meters per cell; Origin is the world-frame pose of cell (0, 0).
type OccupancyGrid struct {
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Resolution float64   `json:"resolution"`
	Origin     RobotPose `json:"origin"`
	Cells      []int8    `json:"cells"`
}

// NewGrid allocates a grid with every cell unknown.
func NewGrid(width, height int, resolution float64) *OccupancyGrid {
	cells := make([]int8, width*height)
	for i := range cells {
		cells[i] = CellUnknown
	}
	return &OccupancyGrid{
		Width:      width,
		Height:     height,
		Resolution: resolution,
		Cells:      cells,
	}
}

// Validate checks grid shape against its cell buffer.
func (g *OccupancyGrid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("nav: zero-sized grid %dx%d", g.Width, g.Height)
	}
	if g.Resolution <= 0 {
		return fmt.Errorf("nav: non-positive grid resolution %f", g.Resolution)
	}
	if len(g.Cells) != g.Width*g.Height {
		return fmt.Errorf("nav: grid has %d cells, shape requires %d", len(g.Cells), g.Width*g.Height)
	}
	return nil
}

// At returns the cell value at (x, y). Out-of-bounds cells are unknown.
func (g *OccupancyGrid) At(x, y int) int8 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return CellUnknown
	}
	return g.Cells[y*g.Width+x]
}

// Set writes the cell value at (x, y). Out-of-bounds writes are ignored.
func (g *OccupancyGrid) Set(x, y int, value int8) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Cells[y*g.Width+x] = value
}

// CellAtPose maps a world-frame pose to grid coordinates.
// The second return is false when the pose falls outside the grid.
func (g *OccupancyGrid) CellAtPose(p RobotPose) (x, y int, ok bool) {
	x = int((p.X - g.Origin.X) / g.Resolution)
	y = int((p.Y - g.Origin.Y) / g.Resolution)
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0, 0, false
	}
	return x, y, true
}

// Reachable reports whether the pose lands on a free cell.
// Poses on unknown or out-of-grid cells are considered unreachable.
func (g *OccupancyGrid) Reachable(p RobotPose) bool {
	x, y, ok := g.CellAtPose(p)
	if !ok {
		return false
	}
	return g.At(x, y) == CellFree
}

// Clone returns a deep copy so callers never share mutable cell storage.
func (g *OccupancyGrid) Clone() *OccupancyGrid {
	if g == nil {
		return nil
	}
	cells := make([]int8, len(g.Cells))
	copy(cells, g.Cells)
	return &OccupancyGrid{
		Width:      g.Width,
		Height:     g.Height,
		Resolution: g.Resolution,
		Origin:     g.Origin,
		Cells:      cells,
	}
}
