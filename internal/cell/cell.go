package cell

import (
	"strings"

	"github.com/roach88/layerpaint/internal/fault"
	"github.com/roach88/layerpaint/internal/layer"
)

// Cell is one square's layer store.
type Cell interface {
	// Add applies layer to the cell. Returns true if the cell changed.
	Add(k layer.Kind) bool

	// Erase removes a layer according to the cell's policy. Returns true if
	// the cell changed.
	Erase(k layer.Kind) bool

	// Special performs the policy's special transformation.
	Special()

	// Colour folds the held layers over start.
	Colour(start layer.RGB, tick int64, x, y int) (layer.RGB, error)

	// Policy reports which composition policy the cell follows.
	Policy() Policy

	// State snapshots the cell's contents.
	State() State
}

// Policy selects a composition policy.
type Policy string

const (
	PolicySet      Policy = "SET"
	PolicyAdd      Policy = "ADD"
	PolicySequence Policy = "SEQUENCE"
)

// Policies lists the supported policies.
var Policies = []Policy{PolicySet, PolicyAdd, PolicySequence}

// ParsePolicy parses a policy name case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToUpper(strings.TrimSpace(s)))
	if p.Valid() {
		return p, nil
	}
	return "", fault.InvalidArgument("unknown draw policy %q: must be one of %v", s, Policies)
}

// New creates an empty cell of the given policy. Capacities derive from
// the catalog size.
func New(p Policy, cat *layer.Catalog) (Cell, error) {
	switch p {
	case PolicySet:
		return NewLastWrite(cat.Invert()), nil
	case PolicyAdd:
		return NewAccumulate(cat.Len() * CapacityFactor), nil
	case PolicySequence:
		return NewDedupOrdered(cat.Len() * CapacityFactor), nil
	default:
		return nil, fault.InvalidArgument("unknown draw policy %q", p)
	}
}

// CapacityFactor multiplies the catalog size to give the per-cell layer
// ceiling for ADD and SEQUENCE cells.
const CapacityFactor = 100

// State is a comparable snapshot of a cell.
type State struct {
	// Layers lists held layer indices in application order.
	Layers []uint `json:"layers" yaml:"layers"`

	// Inverted is set when a SET cell has special active.
	Inverted bool `json:"inverted,omitempty" yaml:"inverted,omitempty"`
}

// Equal reports whether two snapshots match.
func (s State) Equal(o State) bool {
	if s.Inverted != o.Inverted || len(s.Layers) != len(o.Layers) {
		return false
	}
	for i := range s.Layers {
		if s.Layers[i] != o.Layers[i] {
			return false
		}
	}
	return true
}

func checkCoords(x, y int) error {
	if x < 0 || y < 0 {
		return fault.InvalidArgument("coordinates must be non-negative, got (%d, %d)", x, y)
	}
	return nil
}

func (p Policy) String() string { return string(p) }

// Valid reports whether p is one of Policies.
func (p Policy) Valid() bool {
	for _, known := range Policies {
		if p == known {
			return true
		}
	}
	return false
}
