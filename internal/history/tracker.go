// Package history implements bounded undo/redo over composite actions.
//
// The tracker keeps two stacks: done (undoable) and undone (redoable). An
// action lives in at most one of them. Recording a new action does not
// clear the redo stack; a later Redo still re-applies previously undone
// actions on top of whatever was drawn since.
package history

import (
	"github.com/roach88/layerpaint/internal/action"
	"github.com/roach88/layerpaint/internal/bounded"
	"github.com/roach88/layerpaint/internal/grid"
)

// DefaultCapacity bounds each stack.
const DefaultCapacity = 10000

// Tracker holds undoable and redoable actions. It is not safe for
// concurrent use.
type Tracker struct {
	done   *bounded.Stack[*action.Action]
	undone *bounded.Stack[*action.Action]
}

// New creates a tracker with DefaultCapacity per stack.
func New() *Tracker {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity creates a tracker holding at most capacity actions per
// stack.
func NewWithCapacity(capacity int) *Tracker {
	return &Tracker{
		done:   bounded.NewStack[*action.Action](capacity),
		undone: bounded.NewStack[*action.Action](capacity),
	}
}

// Add records a freshly applied action. When the tracker is full the
// action is dropped and Add returns false.
func (t *Tracker) Add(a *action.Action) bool {
	return t.done.Push(a)
}

// Undo reverses the most recent action on s and makes it redoable. It
// returns nil with no error when there is nothing to undo. If reversal
// fails the stacks are left unchanged.
func (t *Tracker) Undo(s *grid.Surface) (*action.Action, error) {
	a, ok := t.done.Peek()
	if !ok {
		return nil, nil
	}
	if err := a.Undo(s); err != nil {
		return nil, err
	}
	t.done.Pop()
	t.undone.Push(a)
	return a, nil
}

// Redo re-applies the most recently undone action on s. It returns nil with
// no error when there is nothing to redo. If re-application fails the
// stacks are left unchanged.
func (t *Tracker) Redo(s *grid.Surface) (*action.Action, error) {
	a, ok := t.undone.Peek()
	if !ok {
		return nil, nil
	}
	if err := a.Redo(s); err != nil {
		return nil, err
	}
	t.undone.Pop()
	t.done.Push(a)
	return a, nil
}

// CanUndo reports whether Undo would act.
func (t *Tracker) CanUndo() bool { return !t.done.Empty() }

// CanRedo reports whether Redo would act.
func (t *Tracker) CanRedo() bool { return !t.undone.Empty() }

// Done returns the number of undoable actions.
func (t *Tracker) Done() int { return t.done.Len() }

// Undone returns the number of redoable actions.
func (t *Tracker) Undone() int { return t.undone.Len() }

// DoneAt returns the undoable action at position i from the oldest.
func (t *Tracker) DoneAt(i int) (*action.Action, bool) {
	return t.done.At(i)
}
