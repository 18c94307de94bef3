package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/minseo-lab/chulgeun/internal/attendance"
)

//go:embed schema.sql
var schemaSQL string

// RecordStore is the append-only attendance log as the core sees it:
// ordered rows of string cells, read-all and append-one.
type RecordStore interface {
	// ReadAll returns every row in insertion order.
	ReadAll(ctx context.Context) ([][]string, error)

	// Append adds exactly one row. Backends that enforce same-day
	// uniqueness return attendance.ErrAlreadyRecorded when the row
	// would duplicate an existing (name, day, class).
	Append(ctx context.Context, cells []string) error

	Close() error
}

// Store is the SQLite-backed record store.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically; safe to call
// multiple times on the same file.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// classOf buckets an event label for the uniqueness guard. Unknown labels
// land in "other" and are never uniqueness-constrained.
func classOf(event attendance.EventType) string {
	switch {
	case event.IsClockInClass():
		return "in"
	case event.IsClockOutClass():
		return "out"
	case event == attendance.EventAbsent:
		return "absent"
	}
	return "other"
}

// cell returns cells[i] or "" for ragged rows.
func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
