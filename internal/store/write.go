package store

import (
	"context"
	"fmt"

	"github.com/roach88/layerpaint/internal/action"
)

// Event kinds.
const (
	EventApply      = "apply"
	EventUndo       = "undo"
	EventRedo       = "redo"
	EventReplayUndo = "replay_undo"
	EventReplayRedo = "replay_redo"
	EventDropped    = "dropped"
)

// Event is one journal entry.
type Event struct {
	Seq      int64  `json:"seq"`
	Kind     string `json:"kind"`
	ActionID string `json:"action_id,omitempty"`
}

// WriteAction records an action and its edits atomically. Writing the same
// action ID twice is a no-op.
func (s *Store) WriteAction(ctx context.Context, seq int64, gesture string, a *action.Action) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write action: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var targetX, targetY any
	if p, ok := a.Target(); ok {
		targetX, targetY = p.X, p.Y
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO actions (id, seq, gesture, special, target_x, target_y)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, a.ID(), seq, gesture, a.Special(), targetX, targetY)
	if err != nil {
		return fmt.Errorf("write action: insert: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("write action: rows affected: %w", err)
	}
	if n == 0 {
		return nil
	}

	for i, e := range a.Edits() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO edits (action_id, ordinal, x, y, layer_index, layer_name, op)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, a.ID(), i, e.X, e.Y, int64(e.Layer.Index), e.Layer.Name, e.Op.String())
		if err != nil {
			return fmt.Errorf("write action: edit %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write action: commit: %w", err)
	}
	return nil
}

// WriteEvent appends an event. ActionID may be empty for events that do
// not concern a stored action.
func (s *Store) WriteEvent(ctx context.Context, e Event) error {
	var actionID any
	if e.ActionID != "" {
		actionID = e.ActionID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (seq, kind, action_id) VALUES (?, ?, ?)
	`, e.Seq, e.Kind, actionID)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
