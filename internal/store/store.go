package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SchemaVersion is written to PRAGMA user_version after the schema is
// applied.
const SchemaVersion = 1

// Store is an in-memory session journal. Like the session it records, it
// expects a single caller.
type Store struct {
	db *sql.DB
}

// OpenMemory creates an empty in-memory journal.
func OpenMemory() (*Store, error) {
	// Each connection to ":memory:" is its own database, so the pool is
	// pinned to one connection that never expires.
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initialize(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// setup runs in order on a fresh database.
var setup = []struct {
	name string
	stmt string
}{
	{"foreign keys", "PRAGMA foreign_keys = ON"},
	{"busy timeout", "PRAGMA busy_timeout = 5000"},
	{"schema", schemaSQL},
	{"schema version", "PRAGMA user_version = " + strconv.Itoa(SchemaVersion)},
}

func initialize(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect journal: %w", err)
	}
	for _, step := range setup {
		if _, err := db.ExecContext(ctx, step.stmt); err != nil {
			return fmt.Errorf("journal %s: %w", step.name, err)
		}
	}
	return nil
}

// Close releases the journal. Its contents are gone afterwards.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Query runs a read-only statement against the journal. Callers close the
// returned rows.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

// pragma reads the current value of a SQLite pragma.
func (s *Store) pragma(ctx context.Context, name string) (string, error) {
	var value string
	if err := s.db.QueryRowContext(ctx, "PRAGMA "+name).Scan(&value); err != nil {
		return "", fmt.Errorf("read pragma %s: %w", name, err)
	}
	return value, nil
}
