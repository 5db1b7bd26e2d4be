// Package action defines composite paint actions: an ordered batch of cell
// edits produced by one gesture, which can be re-applied forwards or
// reversed against a surface.
//
// Reversal replays the edits newest first with Add and Erase swapped. That
// restores the prior state for SET and SEQUENCE cells. ADD cells erase
// their oldest layer rather than a specific one, so reversal is exact only
// when actions are undone in strict LIFO order relative to every other
// accumulation on the same cell.
//
// Special is re-issued unchanged on reversal. It is its own inverse for SET
// (inversion toggle) and ADD (order reversal) but not for SEQUENCE, whose
// median removal cannot be reversed.
package action

import (
	"fmt"

	"github.com/roach88/layerpaint/internal/fault"
	"github.com/roach88/layerpaint/internal/grid"
	"github.com/roach88/layerpaint/internal/layer"
)

// Op is the forward operation of an edit.
type Op int

const (
	OpAdd Op = iota + 1
	OpErase
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpErase:
		return "erase"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// inverse swaps Add and Erase.
func (o Op) inverse() Op {
	if o == OpAdd {
		return OpErase
	}
	return OpAdd
}

// Edit is one cell change.
type Edit struct {
	X, Y  int
	Layer layer.Kind
	Op    Op
}

// Action is an immutable batch of edits.
type Action struct {
	id      string
	edits   []Edit
	special bool
	target  *grid.Point
}

// New builds an action from edits. Every edit needs a catalog layer, a
// known op and non-negative coordinates; bounds are checked at apply time.
func New(id string, edits []Edit) (*Action, error) {
	for i, e := range edits {
		if !e.Layer.Valid() {
			return nil, fault.InvalidInput("edit %d: layer is not a catalog kind", i)
		}
		if e.Op != OpAdd && e.Op != OpErase {
			return nil, fault.InvalidInput("edit %d: unknown op %v", i, e.Op)
		}
		if e.X < 0 || e.Y < 0 {
			return nil, fault.InvalidArgument("edit %d: coordinates must be non-negative, got (%d, %d)", i, e.X, e.Y)
		}
	}
	cp := make([]Edit, len(edits))
	copy(cp, edits)
	return &Action{id: id, edits: cp}, nil
}

// NewSpecial builds a surface-wide special action.
func NewSpecial(id string) *Action {
	return &Action{id: id, special: true}
}

// NewSpecialAt builds a special action scoped to one square.
func NewSpecialAt(id string, x, y int) (*Action, error) {
	if x < 0 || y < 0 {
		return nil, fault.InvalidArgument("coordinates must be non-negative, got (%d, %d)", x, y)
	}
	return &Action{id: id, special: true, target: &grid.Point{X: x, Y: y}}, nil
}

// ID returns the action's identifier.
func (a *Action) ID() string { return a.id }

// Edits returns a copy of the edit list.
func (a *Action) Edits() []Edit {
	out := make([]Edit, len(a.edits))
	copy(out, a.edits)
	return out
}

// Special reports whether the action is a special gesture.
func (a *Action) Special() bool { return a.special }

// Target returns the square a scoped special applies to.
func (a *Action) Target() (grid.Point, bool) {
	if a.target == nil {
		return grid.Point{}, false
	}
	return *a.target, true
}

// checkBounds rejects the action before any cell is touched if an edit or
// the special target falls outside s.
func (a *Action) checkBounds(s *grid.Surface) error {
	for _, e := range a.edits {
		if !s.InBounds(e.X, e.Y) {
			return fault.OutOfBounds(e.X, e.Y, s.Width(), s.Height())
		}
	}
	if a.target != nil && !s.InBounds(a.target.X, a.target.Y) {
		return fault.OutOfBounds(a.target.X, a.target.Y, s.Width(), s.Height())
	}
	return nil
}

// Redo applies the edits in order, then the special, if any. An action
// with any out-of-bounds coordinate leaves s untouched.
func (a *Action) Redo(s *grid.Surface) error {
	if err := a.checkBounds(s); err != nil {
		return fmt.Errorf("redo %s: %w", a.id, err)
	}
	for _, e := range a.edits {
		if err := apply(s, e.X, e.Y, e.Layer, e.Op); err != nil {
			return fmt.Errorf("redo %s: %w", a.id, err)
		}
	}
	if err := a.applySpecial(s); err != nil {
		return fmt.Errorf("redo %s: %w", a.id, err)
	}
	return nil
}

// Undo re-issues the special, if any, then applies the edits newest first
// with Add and Erase swapped.
func (a *Action) Undo(s *grid.Surface) error {
	if err := a.checkBounds(s); err != nil {
		return fmt.Errorf("undo %s: %w", a.id, err)
	}
	if err := a.applySpecial(s); err != nil {
		return fmt.Errorf("undo %s: %w", a.id, err)
	}
	for i := len(a.edits) - 1; i >= 0; i-- {
		e := a.edits[i]
		if err := apply(s, e.X, e.Y, e.Layer, e.Op.inverse()); err != nil {
			return fmt.Errorf("undo %s: %w", a.id, err)
		}
	}
	return nil
}

func (a *Action) applySpecial(s *grid.Surface) error {
	if !a.special {
		return nil
	}
	if a.target == nil {
		s.SpecialAll()
		return nil
	}
	c, err := s.Cell(a.target.X, a.target.Y)
	if err != nil {
		return err
	}
	c.Special()
	return nil
}

func apply(s *grid.Surface, x, y int, k layer.Kind, op Op) error {
	c, err := s.Cell(x, y)
	if err != nil {
		return err
	}
	if op == OpAdd {
		c.Add(k)
	} else {
		c.Erase(k)
	}
	return nil
}
