package store

import (
	"testing"

	"github.com/roach88/layerpaint/internal/action"
	"github.com/roach88/layerpaint/internal/layer"
)

// createTestStore creates a new in-memory store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestAction creates an action painting layer name at each point.
func createTestAction(t *testing.T, id, name string, points ...[2]int) *action.Action {
	t.Helper()
	k, ok := layer.Default().ByName(name)
	if !ok {
		t.Fatalf("unknown layer %q", name)
	}
	edits := make([]action.Edit, 0, len(points))
	for _, p := range points {
		edits = append(edits, action.Edit{X: p[0], Y: p[1], Layer: k, Op: action.OpAdd})
	}
	a, err := action.New(id, edits)
	if err != nil {
		t.Fatalf("action.New() failed: %v", err)
	}
	return a
}
