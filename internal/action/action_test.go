package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/layerpaint/internal/cell"
	"github.com/roach88/layerpaint/internal/fault"
	"github.com/roach88/layerpaint/internal/grid"
	"github.com/roach88/layerpaint/internal/layer"
)

func kind(t *testing.T, name string) layer.Kind {
	t.Helper()
	k, ok := layer.Default().ByName(name)
	require.True(t, ok)
	return k
}

func surface(t *testing.T, p cell.Policy, w, h int) *grid.Surface {
	t.Helper()
	s, err := grid.New(p, w, h, layer.Default())
	require.NoError(t, err)
	return s
}

func layersAt(t *testing.T, s *grid.Surface, x, y int) []uint {
	t.Helper()
	c, err := s.Cell(x, y)
	require.NoError(t, err)
	return c.State().Layers
}

func TestNew_Validation(t *testing.T) {
	_, err := New("a", []Edit{{X: 0, Y: 0, Op: OpAdd}})
	assert.True(t, fault.IsInvalidInput(err), "zero layer")

	_, err = New("a", []Edit{{X: 0, Y: 0, Layer: kind(t, "red"), Op: Op(9)}})
	assert.True(t, fault.IsInvalidInput(err), "unknown op")

	_, err = New("a", []Edit{{X: -1, Y: 0, Layer: kind(t, "red"), Op: OpAdd}})
	assert.True(t, fault.IsInvalidArgument(err))

	_, err = NewSpecialAt("a", 0, -2)
	assert.True(t, fault.IsInvalidArgument(err))
}

func TestNew_CopiesEdits(t *testing.T) {
	edits := []Edit{{X: 0, Y: 0, Layer: kind(t, "red"), Op: OpAdd}}
	a, err := New("a", edits)
	require.NoError(t, err)

	edits[0].X = 7
	assert.Equal(t, 0, a.Edits()[0].X, "action is immutable after construction")

	out := a.Edits()
	out[0].Y = 7
	assert.Equal(t, 0, a.Edits()[0].Y)
}

func TestRedoUndo_Sequence(t *testing.T) {
	s := surface(t, cell.PolicySequence, 2, 1)
	red, blue := kind(t, "red"), kind(t, "blue")

	a, err := New("a1", []Edit{
		{X: 0, Y: 0, Layer: red, Op: OpAdd},
		{X: 1, Y: 0, Layer: blue, Op: OpAdd},
		{X: 0, Y: 0, Layer: blue, Op: OpAdd},
	})
	require.NoError(t, err)

	require.NoError(t, a.Redo(s))
	assert.Equal(t, []uint{red.Index, blue.Index}, layersAt(t, s, 0, 0))
	assert.Equal(t, []uint{blue.Index}, layersAt(t, s, 1, 0))

	require.NoError(t, a.Undo(s))
	assert.Empty(t, layersAt(t, s, 0, 0))
	assert.Empty(t, layersAt(t, s, 1, 0))
}

func TestUndo_EraseReAdds(t *testing.T) {
	s := surface(t, cell.PolicySequence, 1, 1)
	red := kind(t, "red")
	c, _ := s.Cell(0, 0)
	c.Add(red)

	a, err := New("erase", []Edit{{X: 0, Y: 0, Layer: red, Op: OpErase}})
	require.NoError(t, err)

	require.NoError(t, a.Redo(s))
	assert.Empty(t, layersAt(t, s, 0, 0))
	require.NoError(t, a.Undo(s))
	assert.Equal(t, []uint{red.Index}, layersAt(t, s, 0, 0))
}

func TestSpecial_SurfaceWide(t *testing.T) {
	s := surface(t, cell.PolicySet, 2, 2)
	a := NewSpecial("sp")
	assert.True(t, a.Special())
	_, scoped := a.Target()
	assert.False(t, scoped)

	require.NoError(t, a.Redo(s))
	for _, row := range s.State() {
		for _, st := range row {
			assert.True(t, st.Inverted)
		}
	}

	require.NoError(t, a.Undo(s))
	for _, row := range s.State() {
		for _, st := range row {
			assert.False(t, st.Inverted, "toggle is its own inverse")
		}
	}
}

func TestSpecial_Scoped(t *testing.T) {
	s := surface(t, cell.PolicySet, 2, 2)
	a, err := NewSpecialAt("sp", 1, 0)
	require.NoError(t, err)

	p, ok := a.Target()
	require.True(t, ok)
	assert.Equal(t, grid.Point{X: 1, Y: 0}, p)

	require.NoError(t, a.Redo(s))
	st := s.State()
	assert.True(t, st[0][1].Inverted)
	assert.False(t, st[0][0].Inverted)
	assert.False(t, st[1][1].Inverted)
}

func TestRedo_OutOfBoundsLeavesSurfaceUntouched(t *testing.T) {
	s := surface(t, cell.PolicySequence, 1, 1)
	a, err := New("oob", []Edit{
		{X: 0, Y: 0, Layer: kind(t, "red"), Op: OpAdd},
		{X: 3, Y: 0, Layer: kind(t, "red"), Op: OpAdd},
	})
	require.NoError(t, err)

	err = a.Redo(s)
	assert.True(t, fault.IsOutOfBounds(err))
	assert.Empty(t, layersAt(t, s, 0, 0))

	err = a.Undo(s)
	assert.True(t, fault.IsOutOfBounds(err))

	sp, err := NewSpecialAt("sp", 4, 4)
	require.NoError(t, err)
	assert.True(t, fault.IsOutOfBounds(sp.Redo(s)))
}

// Erase on an ADD cell removes the oldest layer, so reversing an older
// action after a newer one accumulated onto the same cell removes the
// wrong layer. This is the documented contract, not a bug to fix here.
func TestUndo_AccumulateOutOfOrderDivergence(t *testing.T) {
	s := surface(t, cell.PolicyAdd, 1, 1)
	red, blue := kind(t, "red"), kind(t, "blue")

	first, _ := New("first", []Edit{{X: 0, Y: 0, Layer: red, Op: OpAdd}})
	second, _ := New("second", []Edit{{X: 0, Y: 0, Layer: blue, Op: OpAdd}})
	require.NoError(t, first.Redo(s))
	require.NoError(t, second.Redo(s))

	// LIFO order: undo second. Head (red) is erased, not blue.
	require.NoError(t, second.Undo(s))
	assert.Equal(t, []uint{blue.Index}, layersAt(t, s, 0, 0))
}

func TestUndo_AccumulateLIFOSingleLayer(t *testing.T) {
	s := surface(t, cell.PolicyAdd, 1, 1)
	red := kind(t, "red")
	a, _ := New("a", []Edit{{X: 0, Y: 0, Layer: red, Op: OpAdd}})

	require.NoError(t, a.Redo(s))
	require.NoError(t, a.Undo(s))
	assert.Empty(t, layersAt(t, s, 0, 0))
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "add", OpAdd.String())
	assert.Equal(t, "erase", OpErase.String())
	assert.Equal(t, "Op(0)", Op(0).String())
}
