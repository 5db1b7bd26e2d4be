// Package store provides a SQLite-backed journal of painting sessions.
//
// The journal records every gesture a session applies and every
// undo/redo/replay step, in logical-clock order:
//   - Actions: one row per composite action (gesture kind, special target)
//   - Edits: the action's ordered cell edits
//   - Events: what happened to which action, and when (seq)
//
// The journal lives only in memory. It exists so harness assertions and the
// CLI can query what a session did with SQL; it is not a save format.
//
// All ordering uses seq (logical clock), never timestamps, and every query
// includes an explicit ORDER BY so results are identical across runs.
package store
