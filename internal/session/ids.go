package session

import "github.com/google/uuid"

// IDGenerator hands out action IDs and session tokens.
// Implemented by UUIDv7Generator here and testutil.SequentialIDs in tests.
type IDGenerator interface {
	Generate() string
}

// Sequencer hands out journal sequence numbers.
type Sequencer interface {
	Next() int64
}

// UUIDv7Generator generates time-sortable UUIDv7 IDs, so journal rows
// sort by creation time when inspected by hand.
//
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7. It panics if the random source
// fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
