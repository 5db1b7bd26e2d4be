package store

import (
	"context"
	"database/sql"
	"fmt"
)

// EditRecord is a stored edit.
type EditRecord struct {
	Ordinal    int    `json:"ordinal"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	LayerIndex uint   `json:"layer_index"`
	LayerName  string `json:"layer_name"`
	Op         string `json:"op"`
}

// ListEvents returns every event ordered by seq.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, action_id
		FROM events
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var e Event
		var actionID sql.NullString
		if err := rows.Scan(&e.Seq, &e.Kind, &actionID); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.ActionID = actionID.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// CountEvents returns how many events of kind were written.
func (s *Store) CountEvents(ctx context.Context, kind string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM events WHERE kind = ?
	`, kind).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// CountActions returns how many actions were written for gesture.
func (s *Store) CountActions(ctx context.Context, gesture string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM actions WHERE gesture = ?
	`, gesture).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count actions: %w", err)
	}
	return n, nil
}

// ActionEdits returns an action's edits in their original order.
// Returns an empty slice (not nil) if the action has none or is unknown.
func (s *Store) ActionEdits(ctx context.Context, actionID string) ([]EditRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ordinal, x, y, layer_index, layer_name, op
		FROM edits
		WHERE action_id = ?
		ORDER BY ordinal ASC
	`, actionID)
	if err != nil {
		return nil, fmt.Errorf("query edits: %w", err)
	}
	defer rows.Close()

	edits := []EditRecord{}
	for rows.Next() {
		var e EditRecord
		var idx int64
		if err := rows.Scan(&e.Ordinal, &e.X, &e.Y, &idx, &e.LayerName, &e.Op); err != nil {
			return nil, fmt.Errorf("scan edit: %w", err)
		}
		e.LayerIndex = uint(idx)
		edits = append(edits, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edits: %w", err)
	}
	return edits, nil
}
