package cell

import (
	"github.com/roach88/layerpaint/internal/bounded"
	"github.com/roach88/layerpaint/internal/layer"
)

// Accumulate applies layers in the order they were added, oldest first.
// Erase always removes the oldest layer, whatever layer is named.
type Accumulate struct {
	queue *bounded.Queue[layer.Kind]
}

// NewAccumulate creates an empty ADD cell holding at most capacity layers.
func NewAccumulate(capacity int) *Accumulate {
	return &Accumulate{queue: bounded.NewQueue[layer.Kind](capacity)}
}

// Add appends k. A full cell is left unchanged.
func (c *Accumulate) Add(k layer.Kind) bool {
	return c.queue.Append(k)
}

// Erase serves the head layer.
func (c *Accumulate) Erase(layer.Kind) bool {
	_, ok := c.queue.Serve()
	return ok
}

// Special reverses the current order by draining the queue through an
// auxiliary stack. Every element survives, zero values included.
func (c *Accumulate) Special() {
	aux := bounded.NewStack[layer.Kind](c.queue.Len())
	for {
		k, ok := c.queue.Serve()
		if !ok {
			break
		}
		aux.Push(k)
	}
	for {
		k, ok := aux.Pop()
		if !ok {
			break
		}
		c.queue.Append(k)
	}
}

func (c *Accumulate) Colour(start layer.RGB, tick int64, x, y int) (layer.RGB, error) {
	if err := checkCoords(x, y); err != nil {
		return layer.RGB{}, err
	}
	out := start
	for k := range c.queue.All() {
		out = k.Apply(out, tick, x, y)
	}
	return out, nil
}

// Len returns the number of held layers.
func (c *Accumulate) Len() int { return c.queue.Len() }

// Cap returns the layer ceiling.
func (c *Accumulate) Cap() int { return c.queue.Cap() }

func (c *Accumulate) Policy() Policy { return PolicyAdd }

func (c *Accumulate) State() State {
	s := State{Layers: make([]uint, 0, c.queue.Len())}
	for k := range c.queue.All() {
		s.Layers = append(s.Layers, k.Index)
	}
	return s
}
