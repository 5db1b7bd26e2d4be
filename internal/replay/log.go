// Package replay implements bounded scripted playback of composite
// actions.
//
// A Log records (action, direction) pairs in two parallel FIFOs while
// recording, then serves them oldest first during playback. Playback never
// re-records: PlayNext consumes the log.
package replay

import (
	"github.com/roach88/layerpaint/internal/action"
	"github.com/roach88/layerpaint/internal/bounded"
	"github.com/roach88/layerpaint/internal/grid"
)

// DefaultCapacity bounds the log.
const DefaultCapacity = 10000

// Log is a bounded FIFO of actions and the direction each was applied in.
// It is not safe for concurrent use.
type Log struct {
	actions    *bounded.Queue[*action.Action]
	directions *bounded.Queue[bool] // true = undo
	playing    bool
}

// New creates a log with DefaultCapacity.
func New() *Log {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity creates a log holding at most capacity entries.
func NewWithCapacity(capacity int) *Log {
	return &Log{
		actions:    bounded.NewQueue[*action.Action](capacity),
		directions: bounded.NewQueue[bool](capacity),
	}
}

// Record appends an action and whether it was an undo. A full log drops
// the entry and returns false.
func (l *Log) Record(a *action.Action, isUndo bool) bool {
	if l.actions.Full() {
		return false
	}
	l.actions.Append(a)
	l.directions.Append(isUndo)
	return true
}

// Start switches from recording to playback.
func (l *Log) Start() {
	l.playing = true
}

// Playing reports whether Start has been called and playback has not yet
// run out of entries.
func (l *Log) Playing() bool { return l.playing }

// PlayNext applies the oldest entry to s: Undo for entries recorded as
// undos, Redo otherwise. It returns true, after clearing the log and
// leaving playback mode, when there is nothing left to play. On an apply
// error the entry has already been consumed.
func (l *Log) PlayNext(s *grid.Surface) (bool, error) {
	a, ok := l.actions.Serve()
	if !ok {
		l.Clear()
		return true, nil
	}
	isUndo, _ := l.directions.Serve()
	if isUndo {
		return false, a.Undo(s)
	}
	return false, a.Redo(s)
}

// Peek returns the entry PlayNext would apply next without consuming it.
func (l *Log) Peek() (a *action.Action, isUndo bool, ok bool) {
	a, ok = l.actions.Peek()
	if !ok {
		return nil, false, false
	}
	isUndo, _ = l.directions.Peek()
	return a, isUndo, true
}

// Len returns the number of pending entries.
func (l *Log) Len() int { return l.actions.Len() }

// Clear drops every entry and leaves playback mode.
func (l *Log) Clear() {
	l.actions.Clear()
	l.directions.Clear()
	l.playing = false
}
