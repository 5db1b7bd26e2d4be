package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/layerpaint/internal/layer"
)

// lettersCatalog declares the given names in order, then invert.
func lettersCatalog(t *testing.T, names ...string) *layer.Catalog {
	t.Helper()
	defs := make([]layer.Def, 0, len(names)+1)
	for i, n := range names {
		defs = append(defs, layer.Def{Name: n, Transform: layer.Shift(i + 1)})
	}
	defs = append(defs, layer.Def{Name: layer.InvertName, Transform: layer.Invert()})
	cat, err := layer.NewCatalog(defs...)
	require.NoError(t, err)
	return cat
}

func names(t *testing.T, cat *layer.Catalog, s State) []string {
	t.Helper()
	out := make([]string, 0, len(s.Layers))
	for _, i := range s.Layers {
		k, ok := cat.ByIndex(i)
		require.True(t, ok)
		out = append(out, k.Name)
	}
	return out
}

func TestDedupOrdered_AddDeduplicates(t *testing.T) {
	c := NewDedupOrdered(100)
	red := kind(t, "red")

	assert.True(t, c.Add(red))
	assert.False(t, c.Add(red), "second add of the same kind is a no-op")
	assert.Equal(t, 1, c.Len())
}

func TestDedupOrdered_SortedByIndex(t *testing.T) {
	c := NewDedupOrdered(100)
	darken, red, black := kind(t, "darken"), kind(t, "red"), kind(t, "black")
	c.Add(darken)
	c.Add(red)
	c.Add(black)
	assert.Equal(t, indices(black, red, darken), c.State().Layers)
}

func TestDedupOrdered_Erase(t *testing.T) {
	c := NewDedupOrdered(100)
	red, blue := kind(t, "red"), kind(t, "blue")
	c.Add(red)

	assert.False(t, c.Erase(blue), "absent layer")
	assert.True(t, c.Erase(red))
	assert.False(t, c.Erase(red))
	assert.Equal(t, 0, c.Len())
}

func TestDedupOrdered_Capacity(t *testing.T) {
	c := NewDedupOrdered(1)
	assert.True(t, c.Add(kind(t, "red")))
	assert.False(t, c.Add(kind(t, "blue")))
}

func TestDedupOrdered_SpecialOddRemovesMiddle(t *testing.T) {
	cat := lettersCatalog(t, "e", "c", "a", "d", "b")
	c := NewDedupOrdered(100)
	for _, k := range cat.All()[:5] {
		c.Add(k)
	}

	c.Special()
	// Sorted names a b c d e; position 2 is "c".
	assert.ElementsMatch(t, []string{"a", "b", "d", "e"}, names(t, cat, c.State()))
}

func TestDedupOrdered_SpecialEvenRemovesLowerMiddle(t *testing.T) {
	cat := lettersCatalog(t, "b", "a", "d", "c")
	c := NewDedupOrdered(100)
	for _, k := range cat.All()[:4] {
		c.Add(k)
	}

	c.Special()
	// Sorted names a b c d; position 1 is "b".
	assert.Equal(t, []string{"a", "d", "c"}, names(t, cat, c.State()), "remaining layers keep index order")
}

func TestDedupOrdered_SpecialSmallCounts(t *testing.T) {
	cat := lettersCatalog(t, "x", "y")
	c := NewDedupOrdered(100)
	c.Special()
	assert.Equal(t, 0, c.Len(), "empty is a no-op")

	all := cat.All()
	c.Add(all[0])
	c.Add(all[1])
	c.Special()
	assert.Equal(t, []string{"y"}, names(t, cat, c.State()), "m=2 removes position 0")

	c.Special()
	assert.Equal(t, 0, c.Len(), "m=1 removes the only layer")
}

func TestDedupOrdered_ColourInIndexOrder(t *testing.T) {
	c := NewDedupOrdered(100)
	c.Add(kind(t, "invert")) // index 3
	c.Add(kind(t, "black"))  // index 1

	got, err := c.Colour(layer.RGB{R: 10, G: 10, B: 10}, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, layer.White, got, "black applies before invert")
}
