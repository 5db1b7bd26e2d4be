package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/layerpaint/internal/layer"
)

func TestLastWrite_AddReplaces(t *testing.T) {
	c := NewLastWrite(layer.Default().Invert())
	red, blue := kind(t, "red"), kind(t, "blue")

	assert.True(t, c.Add(red))
	assert.True(t, c.Add(blue))
	assert.True(t, c.Add(blue), "add always reports a change")
	assert.Equal(t, []uint{blue.Index}, c.State().Layers)
}

func TestLastWrite_EraseIgnoresArgument(t *testing.T) {
	c := NewLastWrite(layer.Default().Invert())
	red, blue := kind(t, "red"), kind(t, "blue")

	assert.False(t, c.Erase(red), "erase on empty cell is unchanged")

	c.Add(red)
	assert.True(t, c.Erase(blue), "erase clears regardless of identity")
	assert.Empty(t, c.State().Layers)
	assert.False(t, c.Erase(red))
}

func TestLastWrite_AtMostOneResident(t *testing.T) {
	c := NewLastWrite(layer.Default().Invert())
	ops := []string{"add:red", "add:green", "erase:red", "erase:red", "add:blue", "add:black", "erase:x", "add:red"}
	for _, op := range ops {
		switch op[:3] {
		case "add":
			c.Add(kind(t, op[4:]))
		default:
			c.Erase(layer.Kind{})
		}
		assert.LessOrEqual(t, len(c.State().Layers), 1, "after %s", op)
	}
}

func TestLastWrite_Colour(t *testing.T) {
	c := NewLastWrite(layer.Default().Invert())
	start := layer.RGB{R: 10, G: 20, B: 30}

	got, err := c.Colour(start, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, start, got, "empty and not inverted")

	c.Special()
	got, _ = c.Colour(start, 0, 0, 0)
	assert.Equal(t, layer.RGB{R: 245, G: 235, B: 225}, got, "empty but inverted")
	assert.True(t, c.State().Inverted)

	c.Add(kind(t, "red"))
	got, _ = c.Colour(start, 0, 0, 0)
	assert.Equal(t, layer.RGB{R: 0, G: 255, B: 255}, got, "layer then invert")

	c.Special()
	got, _ = c.Colour(start, 0, 0, 0)
	assert.Equal(t, layer.RGB{R: 255}, got, "special toggles back")
	assert.False(t, c.State().Inverted)
}
