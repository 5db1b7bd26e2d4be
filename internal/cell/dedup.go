package cell

import (
	"cmp"
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/layerpaint/internal/layer"
)

// DedupOrdered holds each layer index at most once and applies layers in
// ascending index order.
type DedupOrdered struct {
	layers []layer.Kind // sorted by Index
	cap    int
}

// NewDedupOrdered creates an empty SEQUENCE cell holding at most capacity
// layers.
func NewDedupOrdered(capacity int) *DedupOrdered {
	return &DedupOrdered{cap: max(capacity, 0)}
}

func (c *DedupOrdered) find(index uint) (int, bool) {
	return slices.BinarySearchFunc(c.layers, index, func(k layer.Kind, target uint) int {
		return cmp.Compare(k.Index, target)
	})
}

// Add inserts k unless a layer with the same index is already held.
func (c *DedupOrdered) Add(k layer.Kind) bool {
	i, found := c.find(k.Index)
	if found || len(c.layers) >= c.cap {
		return false
	}
	c.layers = slices.Insert(c.layers, i, k)
	return true
}

// Erase removes the layer with k's index, if held.
func (c *DedupOrdered) Erase(k layer.Kind) bool {
	i, found := c.find(k.Index)
	if !found {
		return false
	}
	c.layers = slices.Delete(c.layers, i, i+1)
	return true
}

// Special removes the layer whose name is the median of the held names.
// With an even count the lower of the two middle names is removed.
func (c *DedupOrdered) Special() {
	m := len(c.layers)
	if m == 0 {
		return
	}
	byName := slices.Clone(c.layers)
	slices.SortStableFunc(byName, func(a, b layer.Kind) int {
		if n := cmp.Compare(norm.NFC.String(a.Name), norm.NFC.String(b.Name)); n != 0 {
			return n
		}
		return cmp.Compare(a.Index, b.Index)
	})
	pos := m / 2
	if m%2 == 0 {
		pos--
	}
	c.Erase(byName[pos])
}

func (c *DedupOrdered) Colour(start layer.RGB, tick int64, x, y int) (layer.RGB, error) {
	if err := checkCoords(x, y); err != nil {
		return layer.RGB{}, err
	}
	out := start
	for _, k := range c.layers {
		out = k.Apply(out, tick, x, y)
	}
	return out, nil
}

// Len returns the number of held layers.
func (c *DedupOrdered) Len() int { return len(c.layers) }

func (c *DedupOrdered) Policy() Policy { return PolicySequence }

func (c *DedupOrdered) State() State {
	s := State{Layers: make([]uint, len(c.layers))}
	for i, k := range c.layers {
		s.Layers[i] = k.Index
	}
	return s
}
