package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/layerpaint/internal/cell"
	"github.com/roach88/layerpaint/internal/layer"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s", ev.Step, ev.Op)
			if ev.ActionID != "" {
				fmt.Fprintf(&buf, " %s (%d edits)", ev.ActionID, ev.Edits)
			}
			if ev.Error != "" {
				fmt.Fprintf(&buf, " error=%s", ev.Error)
			}
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// evaluate checks every assertion and returns the failure messages.
func (h *Harness) evaluate(ctx context.Context, assertions []Assertion, result *Result) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertCellLayers:
			err = h.assertCellLayers(result, assertion)
		case AssertCellColour:
			err = h.assertCellColour(result, assertion)
		case AssertHistory:
			err = assertHistory(result, assertion)
		case AssertJournalCount:
			err = h.assertJournalCount(ctx, result, assertion)
		case AssertReplayMatches:
			err = assertReplayMatches(result)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

func (h *Harness) assertCellLayers(result *Result, a Assertion) error {
	c, err := result.Surface.Cell(a.At.X, a.At.Y)
	if err != nil {
		return err
	}
	state := c.State()
	got := h.layerNames(state)
	want := a.Layers
	if want == nil {
		want = []string{}
	}

	if !slices.Equal(got, want) {
		return &AssertionError{
			Type:     AssertCellLayers,
			Expected: fmt.Sprintf("(%d, %d) holds %v", a.At.X, a.At.Y, want),
			Actual:   fmt.Sprintf("holds %v", got),
			Trace:    result.Trace,
		}
	}
	if a.Inverted != nil && state.Inverted != *a.Inverted {
		return &AssertionError{
			Type:     AssertCellLayers,
			Expected: fmt.Sprintf("(%d, %d) inverted=%t", a.At.X, a.At.Y, *a.Inverted),
			Actual:   fmt.Sprintf("inverted=%t", state.Inverted),
			Trace:    result.Trace,
		}
	}
	return nil
}

func (h *Harness) assertCellColour(result *Result, a Assertion) error {
	got, err := result.Surface.Colour(a.At.X, a.At.Y, h.start, h.tick)
	if err != nil {
		return err
	}
	if got != *a.Colour {
		return &AssertionError{
			Type:     AssertCellColour,
			Expected: fmt.Sprintf("(%d, %d) is %s", a.At.X, a.At.Y, *a.Colour),
			Actual:   got.String(),
			Trace:    result.Trace,
		}
	}
	return nil
}

func assertHistory(result *Result, a Assertion) error {
	if a.Done != nil && result.Done != *a.Done {
		return &AssertionError{
			Type:     AssertHistory,
			Expected: fmt.Sprintf("%d undoable actions", *a.Done),
			Actual:   fmt.Sprintf("%d", result.Done),
			Trace:    result.Trace,
		}
	}
	if a.Undone != nil && result.Undone != *a.Undone {
		return &AssertionError{
			Type:     AssertHistory,
			Expected: fmt.Sprintf("%d redoable actions", *a.Undone),
			Actual:   fmt.Sprintf("%d", result.Undone),
			Trace:    result.Trace,
		}
	}
	return nil
}

func (h *Harness) assertJournalCount(ctx context.Context, result *Result, a Assertion) error {
	var (
		n    int
		err  error
		what string
	)
	if a.Event != "" {
		n, err = h.journal.CountEvents(ctx, a.Event)
		what = a.Event + " events"
	} else {
		n, err = h.journal.CountActions(ctx, a.Gesture)
		what = a.Gesture + " actions"
	}
	if err != nil {
		return err
	}
	if n != a.Count {
		return &AssertionError{
			Type:     AssertJournalCount,
			Expected: fmt.Sprintf("%d %s", a.Count, what),
			Actual:   fmt.Sprintf("%d", n),
			Trace:    result.Trace,
		}
	}
	return nil
}

func assertReplayMatches(result *Result) error {
	if result.ReplayMatches() {
		return nil
	}
	return &AssertionError{
		Type:     AssertReplayMatches,
		Expected: "replayed surface equals live surface",
		Actual:   "surfaces differ",
		Trace:    result.Trace,
	}
}

// layerNames maps held indices back to catalog names.
func (h *Harness) layerNames(s cell.State) []string {
	names := make([]string, 0, len(s.Layers))
	for _, idx := range s.Layers {
		names = append(names, kindName(h.catalog, idx))
	}
	return names
}

func kindName(cat *layer.Catalog, idx uint) string {
	if k, ok := cat.ByIndex(idx); ok {
		return k.Name
	}
	return fmt.Sprintf("#%d", idx)
}
