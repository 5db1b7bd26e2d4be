package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/layerpaint/internal/cell"
	"github.com/roach88/layerpaint/internal/grid"
	"github.com/roach88/layerpaint/internal/layer"
)

// Layer looks up a default-catalog layer by name, failing the test if it
// does not exist.
func Layer(t testing.TB, name string) layer.Kind {
	t.Helper()
	k, ok := layer.Default().ByName(name)
	require.True(t, ok, "no layer named %q", name)
	return k
}

// Surface builds an empty surface over the default catalog.
func Surface(t testing.TB, p cell.Policy, width, height int) *grid.Surface {
	t.Helper()
	s, err := grid.New(p, width, height, layer.Default())
	require.NoError(t, err)
	return s
}

// Layers returns the held layer indices of the cell at (x, y).
func Layers(t testing.TB, s *grid.Surface, x, y int) []uint {
	t.Helper()
	c, err := s.Cell(x, y)
	require.NoError(t, err)
	return c.State().Layers
}
