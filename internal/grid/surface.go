// Package grid provides the painting surface: a rectangle of composition
// cells sharing one policy, plus the brush size used by gestures.
package grid

import (
	"github.com/roach88/layerpaint/internal/cell"
	"github.com/roach88/layerpaint/internal/fault"
	"github.com/roach88/layerpaint/internal/layer"
)

// Brush bounds.
const (
	DefaultBrush = 2
	MinBrush     = 0
	MaxBrush     = 5
)

// Point addresses one square.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Surface is a width × height array of cells. It is not safe for
// concurrent use; callers serialize access.
type Surface struct {
	policy  cell.Policy
	catalog *layer.Catalog
	width   int
	height  int
	cells   [][]cell.Cell // cells[x][y]
	brush   int
}

// New creates a surface of empty cells.
func New(p cell.Policy, width, height int, cat *layer.Catalog) (*Surface, error) {
	if width < 0 || height < 0 {
		return nil, fault.InvalidArgument("dimensions must be non-negative, got %dx%d", width, height)
	}
	if cat == nil {
		return nil, fault.InvalidArgument("catalog is required")
	}
	if !p.Valid() {
		return nil, fault.InvalidArgument("unknown draw policy %q", p)
	}
	s := &Surface{
		policy:  p,
		catalog: cat,
		width:   width,
		height:  height,
		cells:   make([][]cell.Cell, width),
		brush:   DefaultBrush,
	}
	for x := range s.cells {
		s.cells[x] = make([]cell.Cell, height)
		for y := range s.cells[x] {
			c, err := cell.New(p, cat)
			if err != nil {
				return nil, err
			}
			s.cells[x][y] = c
		}
	}
	return s, nil
}

// Fresh returns an empty surface with the same policy, extent and catalog.
// The brush size is reset to the default.
func (s *Surface) Fresh() *Surface {
	fresh, err := New(s.policy, s.width, s.height, s.catalog)
	if err != nil {
		// s was built from the same arguments.
		panic(err)
	}
	return fresh
}

func (s *Surface) Width() int              { return s.width }
func (s *Surface) Height() int             { return s.height }
func (s *Surface) Policy() cell.Policy     { return s.policy }
func (s *Surface) Catalog() *layer.Catalog { return s.catalog }

// InBounds reports whether (x, y) addresses a square.
func (s *Surface) InBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Cell returns the cell at (x, y).
func (s *Surface) Cell(x, y int) (cell.Cell, error) {
	if !s.InBounds(x, y) {
		return nil, fault.OutOfBounds(x, y, s.width, s.height)
	}
	return s.cells[x][y], nil
}

// SetCell replaces the cell at (x, y). The cell must follow the surface's
// policy.
func (s *Surface) SetCell(x, y int, c cell.Cell) error {
	if !s.InBounds(x, y) {
		return fault.OutOfBounds(x, y, s.width, s.height)
	}
	if c == nil {
		return fault.InvalidInput("cell is nil")
	}
	if c.Policy() != s.policy {
		return fault.InvalidInput("cell policy %s does not match surface policy %s", c.Policy(), s.policy)
	}
	s.cells[x][y] = c
	return nil
}

// Brush returns the current brush size.
func (s *Surface) Brush() int { return s.brush }

// IncreaseBrush grows the brush by one, saturating at MaxBrush.
func (s *Surface) IncreaseBrush() {
	if s.brush < MaxBrush {
		s.brush++
	}
}

// DecreaseBrush shrinks the brush by one, saturating at MinBrush.
func (s *Surface) DecreaseBrush() {
	if s.brush > MinBrush {
		s.brush--
	}
}

// SpecialAll runs Special on every cell in row-major order.
func (s *Surface) SpecialAll() {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.cells[x][y].Special()
		}
	}
}

// BrushArea returns the in-bounds squares within Manhattan distance Brush
// of (x, y), x-major. The centre need not be in bounds.
func (s *Surface) BrushArea(x, y int) []Point {
	var pts []Point
	for px := x - s.brush; px <= x+s.brush; px++ {
		for py := y - s.brush; py <= y+s.brush; py++ {
			if abs(px-x)+abs(py-y) > s.brush || !s.InBounds(px, py) {
				continue
			}
			pts = append(pts, Point{X: px, Y: py})
		}
	}
	return pts
}

// Colour returns the colour shown at (x, y).
func (s *Surface) Colour(x, y int, start layer.RGB, tick int64) (layer.RGB, error) {
	c, err := s.Cell(x, y)
	if err != nil {
		return layer.RGB{}, err
	}
	return c.Colour(start, tick, x, y)
}

// Render returns every square's colour, indexed [y][x].
func (s *Surface) Render(start layer.RGB, tick int64) [][]layer.RGB {
	rows := make([][]layer.RGB, s.height)
	for y := range rows {
		rows[y] = make([]layer.RGB, s.width)
		for x := range rows[y] {
			// Coordinates are in bounds and non-negative.
			rows[y][x], _ = s.cells[x][y].Colour(start, tick, x, y)
		}
	}
	return rows
}

// State snapshots every cell, indexed [y][x].
func (s *Surface) State() [][]cell.State {
	rows := make([][]cell.State, s.height)
	for y := range rows {
		rows[y] = make([]cell.State, s.width)
		for x := range rows[y] {
			rows[y][x] = s.cells[x][y].State()
		}
	}
	return rows
}

// Equal reports whether two surfaces have the same extent, policy and cell
// contents. Brush size is ignored.
func (s *Surface) Equal(o *Surface) bool {
	if s.width != o.width || s.height != o.height || s.policy != o.policy {
		return false
	}
	for x := range s.cells {
		for y := range s.cells[x] {
			if !s.cells[x][y].State().Equal(o.cells[x][y].State()) {
				return false
			}
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
