package cell

import "github.com/roach88/layerpaint/internal/layer"

// LastWrite holds at most one layer. Add replaces it, Erase clears it
// whatever layer is named, and Special toggles inversion of the output.
type LastWrite struct {
	held     layer.Kind
	has      bool
	inverted bool
	invert   layer.Kind
}

// NewLastWrite creates an empty SET cell that inverts with invert.
func NewLastWrite(invert layer.Kind) *LastWrite {
	return &LastWrite{invert: invert}
}

func (c *LastWrite) Add(k layer.Kind) bool {
	c.held, c.has = k, true
	return true
}

func (c *LastWrite) Erase(layer.Kind) bool {
	if !c.has {
		return false
	}
	c.held, c.has = layer.Kind{}, false
	return true
}

func (c *LastWrite) Special() {
	c.inverted = !c.inverted
}

func (c *LastWrite) Colour(start layer.RGB, tick int64, x, y int) (layer.RGB, error) {
	if err := checkCoords(x, y); err != nil {
		return layer.RGB{}, err
	}
	out := start
	if c.has {
		out = c.held.Apply(out, tick, x, y)
	}
	if c.inverted {
		out = c.invert.Apply(out, tick, x, y)
	}
	return out, nil
}

func (c *LastWrite) Policy() Policy { return PolicySet }

func (c *LastWrite) State() State {
	s := State{Layers: []uint{}, Inverted: c.inverted}
	if c.has {
		s.Layers = append(s.Layers, c.held.Index)
	}
	return s
}
