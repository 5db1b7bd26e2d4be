// Package session ties a painting surface to its undo history and replay
// log.
//
// A Session turns brush gestures into composite actions, applies them,
// records them for undo/redo and for replay, and optionally journals every
// step to an in-memory store. During replay the session refuses gestures
// until the log has been played out.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/layerpaint/internal/action"
	"github.com/roach88/layerpaint/internal/fault"
	"github.com/roach88/layerpaint/internal/grid"
	"github.com/roach88/layerpaint/internal/history"
	"github.com/roach88/layerpaint/internal/layer"
	"github.com/roach88/layerpaint/internal/replay"
	"github.com/roach88/layerpaint/internal/store"
)

// ErrReplaying is returned by gestures issued while a replay is running.
var ErrReplaying = errors.New("session is replaying")

// Gesture names, as journaled.
const (
	GesturePaint   = "paint"
	GestureErase   = "erase"
	GestureSpecial = "special"
)

// Session is a single user's editing session. It is not safe for
// concurrent use.
type Session struct {
	surface *grid.Surface
	history *history.Tracker
	log     *replay.Log

	journal *store.Store
	logger  *slog.Logger
	ids     IDGenerator
	clock   Sequencer
	token   string

	historyCap int
	replayCap  int
}

// Option configures a Session.
type Option func(*Session)

// WithJournal records every step to j.
func WithJournal(j *store.Store) Option {
	return func(s *Session) { s.journal = j }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithIDGenerator sets the action ID source. Defaults to UUIDv7.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Session) { s.ids = g }
}

// WithSequencer sets the journal clock. Defaults to a fresh Clock.
func WithSequencer(seq Sequencer) Option {
	return func(s *Session) { s.clock = seq }
}

// WithToken fixes the session token instead of generating one.
func WithToken(token string) Option {
	return func(s *Session) { s.token = token }
}

// WithHistoryCapacity bounds each undo/redo stack.
func WithHistoryCapacity(n int) Option {
	return func(s *Session) { s.historyCap = n }
}

// WithReplayCapacity bounds the replay log.
func WithReplayCapacity(n int) Option {
	return func(s *Session) { s.replayCap = n }
}

// New starts a session editing surface.
func New(surface *grid.Surface, opts ...Option) *Session {
	s := &Session{
		surface:    surface,
		ids:        UUIDv7Generator{},
		clock:      NewClock(),
		historyCap: history.DefaultCapacity,
		replayCap:  replay.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.token == "" {
		s.token = s.ids.Generate()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("session", s.token)
	s.history = history.NewWithCapacity(s.historyCap)
	s.log = replay.NewWithCapacity(s.replayCap)
	return s
}

// Surface returns the surface currently being edited. StartReplay swaps
// it for a fresh one.
func (s *Session) Surface() *grid.Surface { return s.surface }

// Token identifies the session in logs.
func (s *Session) Token() string { return s.token }

// History exposes the undo/redo tracker.
func (s *Session) History() *history.Tracker { return s.history }

// Replaying reports whether a replay is in progress.
func (s *Session) Replaying() bool { return s.log.Playing() }

// Pending returns the number of entries waiting in the replay log.
func (s *Session) Pending() int { return s.log.Len() }

// Paint adds k to every cell under the brush centred on (x, y). Only
// cells that changed become edits. It returns nil when nothing changed.
func (s *Session) Paint(ctx context.Context, x, y int, k layer.Kind) (*action.Action, error) {
	return s.stroke(ctx, GesturePaint, x, y, k, action.OpAdd)
}

// Erase removes k from every cell under the brush centred on (x, y).
func (s *Session) Erase(ctx context.Context, x, y int, k layer.Kind) (*action.Action, error) {
	return s.stroke(ctx, GestureErase, x, y, k, action.OpErase)
}

func (s *Session) stroke(ctx context.Context, gesture string, x, y int, k layer.Kind, op action.Op) (*action.Action, error) {
	if s.log.Playing() {
		return nil, ErrReplaying
	}
	if !k.Valid() {
		return nil, fault.InvalidInput("%s: layer is not in the catalog", gesture)
	}
	if !s.surface.InBounds(x, y) {
		return nil, fault.OutOfBounds(x, y, s.surface.Width(), s.surface.Height())
	}

	var edits []action.Edit
	for _, p := range s.surface.BrushArea(x, y) {
		c, err := s.surface.Cell(p.X, p.Y)
		if err != nil {
			return nil, err
		}
		var changed bool
		if op == action.OpAdd {
			changed = c.Add(k)
		} else {
			changed = c.Erase(k)
		}
		if changed {
			edits = append(edits, action.Edit{X: p.X, Y: p.Y, Layer: k, Op: op})
		}
	}
	if len(edits) == 0 {
		s.logger.Debug("gesture changed nothing",
			"gesture", gesture, "x", x, "y", y, "layer", k.Name)
		return nil, nil
	}

	a, err := action.New(s.ids.Generate(), edits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", gesture, err)
	}
	s.logger.Debug("gesture applied",
		"gesture", gesture, "action", a.ID(), "layer", k.Name, "edits", len(edits))
	return a, s.record(ctx, gesture, a)
}

// Special toggles every cell's special effect.
func (s *Session) Special(ctx context.Context) (*action.Action, error) {
	if s.log.Playing() {
		return nil, ErrReplaying
	}
	s.surface.SpecialAll()
	a := action.NewSpecial(s.ids.Generate())
	s.logger.Debug("gesture applied", "gesture", GestureSpecial, "action", a.ID())
	return a, s.record(ctx, GestureSpecial, a)
}

// SpecialAt toggles the special effect of the single cell at (x, y).
func (s *Session) SpecialAt(ctx context.Context, x, y int) (*action.Action, error) {
	if s.log.Playing() {
		return nil, ErrReplaying
	}
	c, err := s.surface.Cell(x, y)
	if err != nil {
		return nil, err
	}
	a, err := action.NewSpecialAt(s.ids.Generate(), x, y)
	if err != nil {
		return nil, err
	}
	c.Special()
	s.logger.Debug("gesture applied",
		"gesture", GestureSpecial, "action", a.ID(), "x", x, "y", y)
	return a, s.record(ctx, GestureSpecial, a)
}

// record files a freshly applied action with history, replay and journal.
// Full containers drop the action without failing the gesture.
func (s *Session) record(ctx context.Context, gesture string, a *action.Action) error {
	if err := s.writeAction(ctx, gesture, a); err != nil {
		return err
	}
	if err := s.writeEvent(ctx, store.EventApply, a); err != nil {
		return err
	}
	if !s.history.Add(a) {
		s.logger.Warn("history full, action dropped", "action", a.ID())
		if err := s.writeEvent(ctx, store.EventDropped, a); err != nil {
			return err
		}
	}
	return s.remember(ctx, a, false)
}

func (s *Session) remember(ctx context.Context, a *action.Action, isUndo bool) error {
	if s.log.Record(a, isUndo) {
		return nil
	}
	s.logger.Warn("replay log full, entry dropped", "action", a.ID(), "undo", isUndo)
	return s.writeEvent(ctx, store.EventDropped, a)
}

// Undo reverses the most recent action. It returns nil when there is
// nothing to undo.
func (s *Session) Undo(ctx context.Context) (*action.Action, error) {
	if s.log.Playing() {
		return nil, ErrReplaying
	}
	a, err := s.history.Undo(s.surface)
	if err != nil || a == nil {
		return nil, err
	}
	s.logger.Debug("undo", "action", a.ID())
	if err := s.writeEvent(ctx, store.EventUndo, a); err != nil {
		return a, err
	}
	return a, s.remember(ctx, a, true)
}

// Redo re-applies the most recently undone action. It returns nil when
// there is nothing to redo.
func (s *Session) Redo(ctx context.Context) (*action.Action, error) {
	if s.log.Playing() {
		return nil, ErrReplaying
	}
	a, err := s.history.Redo(s.surface)
	if err != nil || a == nil {
		return nil, err
	}
	s.logger.Debug("redo", "action", a.ID())
	if err := s.writeEvent(ctx, store.EventRedo, a); err != nil {
		return a, err
	}
	return a, s.remember(ctx, a, false)
}

// IncreaseBrush grows the brush by one, saturating at grid.MaxBrush.
func (s *Session) IncreaseBrush() int {
	s.surface.IncreaseBrush()
	return s.surface.Brush()
}

// DecreaseBrush shrinks the brush by one, saturating at grid.MinBrush.
func (s *Session) DecreaseBrush() int {
	s.surface.DecreaseBrush()
	return s.surface.Brush()
}

// StartReplay swaps in a fresh surface of the same shape and switches the
// log to playback. The brush size carries over.
func (s *Session) StartReplay(ctx context.Context) error {
	if s.log.Playing() {
		return ErrReplaying
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	brush := s.surface.Brush()
	s.surface = s.surface.Fresh()
	for s.surface.Brush() < brush {
		s.surface.IncreaseBrush()
	}
	for s.surface.Brush() > brush {
		s.surface.DecreaseBrush()
	}
	s.log.Start()
	s.logger.Info("replay started", "entries", s.log.Len())
	return nil
}

// ReplayNext applies the next log entry. It returns true once the log is
// exhausted, at which point the session accepts gestures again.
func (s *Session) ReplayNext(ctx context.Context) (bool, error) {
	if !s.log.Playing() {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	a, isUndo, ok := s.log.Peek()
	done, err := s.log.PlayNext(s.surface)
	if done {
		s.logger.Info("replay finished")
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("replay %s: %w", a.ID(), err)
	}
	if ok {
		kind := store.EventReplayRedo
		if isUndo {
			kind = store.EventReplayUndo
		}
		if err := s.writeEvent(ctx, kind, a); err != nil {
			return false, err
		}
	}
	return false, nil
}

// ReplayAll plays the log out. It stops at the first error.
func (s *Session) ReplayAll(ctx context.Context) error {
	if err := s.StartReplay(ctx); err != nil {
		return err
	}
	for {
		done, err := s.ReplayNext(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (s *Session) writeAction(ctx context.Context, gesture string, a *action.Action) error {
	if s.journal == nil {
		return nil
	}
	if err := s.journal.WriteAction(ctx, s.clock.Next(), gesture, a); err != nil {
		return fmt.Errorf("journal %s: %w", a.ID(), err)
	}
	return nil
}

func (s *Session) writeEvent(ctx context.Context, kind string, a *action.Action) error {
	if s.journal == nil {
		return nil
	}
	e := store.Event{Seq: s.clock.Next(), Kind: kind, ActionID: a.ID()}
	if err := s.journal.WriteEvent(ctx, e); err != nil {
		return fmt.Errorf("journal %s: %w", a.ID(), err)
	}
	return nil
}
