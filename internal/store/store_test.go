package store

import (
	"context"
	"testing"

	"github.com/roach88/layerpaint/internal/action"
)

func TestOpenMemory_AppliesSchema(t *testing.T) {
	s := createTestStore(t)

	for _, table := range []string{"actions", "edits", "events"} {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		if err != nil {
			t.Errorf("query %s failed: %v", table, err)
		}
		if count != 0 {
			t.Errorf("%s has %d rows, expected 0", table, count)
		}
	}
}

func TestOpenMemory_Pragmas(t *testing.T) {
	s := createTestStore(t)

	want := map[string]string{
		"foreign_keys": "1",
		"busy_timeout": "5000",
		"user_version": "1",
	}
	for name, expected := range want {
		got, err := s.pragma(context.Background(), name)
		if err != nil {
			t.Errorf("pragma(%s) failed: %v", name, err)
			continue
		}
		if got != expected {
			t.Errorf("%s = %q, expected %q", name, got, expected)
		}
	}
}

func TestOpenMemory_Isolated(t *testing.T) {
	ctx := context.Background()
	s1 := createTestStore(t)
	s2 := createTestStore(t)

	if err := s1.WriteEvent(ctx, Event{Seq: 1, Kind: EventDropped}); err != nil {
		t.Fatalf("WriteEvent() failed: %v", err)
	}

	events, err := s2.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents() failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("second store sees %d events, expected 0", len(events))
	}
}

func TestClose_Twice(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	// database/sql tolerates a second Close.
	if err := s.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}

func TestWriteAction_StoresEditsInOrder(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	a := createTestAction(t, "a1", "red", [2]int{2, 0}, [2]int{0, 1}, [2]int{1, 1})

	if err := s.WriteAction(ctx, 1, "paint", a); err != nil {
		t.Fatalf("WriteAction() failed: %v", err)
	}

	edits, err := s.ActionEdits(ctx, "a1")
	if err != nil {
		t.Fatalf("ActionEdits() failed: %v", err)
	}
	if len(edits) != 3 {
		t.Fatalf("got %d edits, expected 3", len(edits))
	}
	want := [][2]int{{2, 0}, {0, 1}, {1, 1}}
	for i, e := range edits {
		if e.Ordinal != i {
			t.Errorf("edit %d ordinal = %d", i, e.Ordinal)
		}
		if e.X != want[i][0] || e.Y != want[i][1] {
			t.Errorf("edit %d at (%d, %d), expected (%d, %d)", i, e.X, e.Y, want[i][0], want[i][1])
		}
		if e.LayerName != "red" || e.LayerIndex != 4 {
			t.Errorf("edit %d layer = %s/%d, expected red/4", i, e.LayerName, e.LayerIndex)
		}
		if e.Op != action.OpAdd.String() {
			t.Errorf("edit %d op = %q", i, e.Op)
		}
	}
}

func TestWriteAction_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	a := createTestAction(t, "a1", "blue", [2]int{0, 0})

	for i := 0; i < 2; i++ {
		if err := s.WriteAction(ctx, int64(i+1), "paint", a); err != nil {
			t.Fatalf("WriteAction() iteration %d failed: %v", i, err)
		}
	}

	n, err := s.CountActions(ctx, "paint")
	if err != nil {
		t.Fatalf("CountActions() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountActions() = %d, expected 1", n)
	}
	edits, _ := s.ActionEdits(ctx, "a1")
	if len(edits) != 1 {
		t.Errorf("got %d edits, expected 1", len(edits))
	}
}

func TestWriteAction_SpecialTarget(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	a, err := action.NewSpecialAt("sp", 3, 4)
	if err != nil {
		t.Fatalf("NewSpecialAt() failed: %v", err)
	}
	if err := s.WriteAction(ctx, 1, "special", a); err != nil {
		t.Fatalf("WriteAction() failed: %v", err)
	}
	if err := s.WriteAction(ctx, 2, "special", action.NewSpecial("all")); err != nil {
		t.Fatalf("WriteAction() failed: %v", err)
	}

	rows, err := s.Query(ctx, "SELECT id, special, target_x, target_y FROM actions ORDER BY seq")
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	defer rows.Close()

	type row struct {
		id      string
		special bool
		x, y    *int
	}
	var got []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.special, &r.x, &r.y); err != nil {
			t.Fatalf("Scan() failed: %v", err)
		}
		got = append(got, r)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, expected 2", len(got))
	}
	if !got[0].special || got[0].x == nil || *got[0].x != 3 || *got[0].y != 4 {
		t.Errorf("targeted special stored as %+v", got[0])
	}
	if !got[1].special || got[1].x != nil || got[1].y != nil {
		t.Errorf("surface special stored as %+v", got[1])
	}
}

func TestWriteEvent_UnknownActionRejected(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	err := s.WriteEvent(ctx, Event{Seq: 1, Kind: EventUndo, ActionID: "missing"})
	if err == nil {
		t.Fatal("WriteEvent() with unknown action should fail")
	}
}

func TestWriteEvent_DuplicateSeqRejected(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	if err := s.WriteEvent(ctx, Event{Seq: 7, Kind: EventDropped}); err != nil {
		t.Fatalf("WriteEvent() failed: %v", err)
	}
	if err := s.WriteEvent(ctx, Event{Seq: 7, Kind: EventDropped}); err == nil {
		t.Error("duplicate seq should fail")
	}
}

func TestListEvents_OrderedBySeq(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	a := createTestAction(t, "a1", "red", [2]int{0, 0})
	if err := s.WriteAction(ctx, 1, "paint", a); err != nil {
		t.Fatalf("WriteAction() failed: %v", err)
	}

	for _, e := range []Event{
		{Seq: 3, Kind: EventUndo, ActionID: "a1"},
		{Seq: 1, Kind: EventApply, ActionID: "a1"},
		{Seq: 2, Kind: EventDropped},
	} {
		if err := s.WriteEvent(ctx, e); err != nil {
			t.Fatalf("WriteEvent(%+v) failed: %v", e, err)
		}
	}

	events, err := s.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents() failed: %v", err)
	}
	want := []Event{
		{Seq: 1, Kind: EventApply, ActionID: "a1"},
		{Seq: 2, Kind: EventDropped},
		{Seq: 3, Kind: EventUndo, ActionID: "a1"},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, expected %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, expected %+v", i, events[i], want[i])
		}
	}
}

func TestListEvents_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)
	events, err := s.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("ListEvents() failed: %v", err)
	}
	if events == nil {
		t.Error("ListEvents() returned nil, expected empty slice")
	}
}

func TestCountEvents(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	a := createTestAction(t, "a1", "red", [2]int{0, 0})
	if err := s.WriteAction(ctx, 1, "paint", a); err != nil {
		t.Fatalf("WriteAction() failed: %v", err)
	}

	kinds := []string{EventApply, EventUndo, EventRedo, EventUndo}
	for i, k := range kinds {
		if err := s.WriteEvent(ctx, Event{Seq: int64(i + 1), Kind: k, ActionID: "a1"}); err != nil {
			t.Fatalf("WriteEvent() failed: %v", err)
		}
	}

	tests := []struct {
		kind string
		want int
	}{
		{EventApply, 1},
		{EventUndo, 2},
		{EventRedo, 1},
		{EventReplayRedo, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			n, err := s.CountEvents(ctx, tt.kind)
			if err != nil {
				t.Fatalf("CountEvents() failed: %v", err)
			}
			if n != tt.want {
				t.Errorf("CountEvents(%q) = %d, expected %d", tt.kind, n, tt.want)
			}
		})
	}
}

func TestActionEdits_UnknownAction(t *testing.T) {
	s := createTestStore(t)
	edits, err := s.ActionEdits(context.Background(), "nope")
	if err != nil {
		t.Fatalf("ActionEdits() failed: %v", err)
	}
	if edits == nil || len(edits) != 0 {
		t.Errorf("ActionEdits() = %v, expected empty slice", edits)
	}
}
