// Package harness runs scripted painting sessions and checks the result.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: set_overwrite
//	description: "SET cells keep only the last layer"
//	policy: SET
//	width: 3
//	height: 3
//	start: {r: 255, g: 255, b: 255}
//	tick: 0
//	brush: 1
//	steps:
//	  - op: paint
//	    at: {x: 1, y: 1}
//	    layer: red
//	  - op: undo
//	  - op: paint
//	    at: {x: 9, y: 9}
//	    layer: red
//	    expect: {error: INDEX_OUT_OF_BOUNDS}
//	replay: true
//	assertions:
//	  - type: cell_layers
//	    at: {x: 1, y: 1}
//	    layers: []
//	  - type: replay_matches
//
// # Step Operations
//
//   - paint, erase: brush gesture at `at` with `layer`
//   - special: toggle every cell, or only the cell at `at` when given
//   - undo, redo
//   - brush_up, brush_down
//
// # Assertion Types
//
//   - cell_layers: held layer names of one cell, in order, and optionally
//     whether it is inverted
//   - cell_colour: rendered colour of one cell
//   - history: number of undoable and/or redoable actions
//   - journal_count: number of journal events of a kind, or of actions of
//     a gesture
//   - replay_matches: replaying the log on a fresh surface reproduced the
//     live surface (requires replay: true)
//
// # Deterministic Testing
//
// Every run uses sequential action IDs (action-001, ...), a resettable
// logical clock and a fresh in-memory journal, so the same scenario always
// produces the same trace and golden snapshot.
package harness
