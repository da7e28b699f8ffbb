// Package store provides the operational database backing the assistant's
// domain handlers: tickets, people and leave, support desk requests, and
// warehouse catalog metadata. It runs on an embedded SQLite database and
// seeds a demo dataset on first open so the assistant is usable out of the
// box.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("store: not found")
	// ErrInvalidStatus is returned when a status transition uses a value
	// outside the workflow vocabulary.
	ErrInvalidStatus = errors.New("store: invalid status")
	// ErrInvalidDates is returned when a leave request carries dates that
	// do not parse or span a negative range.
	ErrInvalidDates = errors.New("store: invalid dates")
)

// Store wraps the SQLite connection shared by all domain operations.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the database at path, applies the schema, and
// seeds the demo dataset when the database is empty. Use ":memory:" for an
// ephemeral database.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// modernc.org/sqlite serializes writes per connection; a single
	// connection avoids table-lock errors under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s := &Store{db: db, logger: logger}
	seeded, err := s.seed(context.Background())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("seed database: %w", err)
	}
	if seeded {
		logger.Info("database seeded with demo dataset", "path", path)
	}
	return s, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// findEmployeeID resolves a free-form name to an employee row id. Returns a
// NULL id when the name is empty or matches nobody, mirroring an unassigned
// ticket.
func (s *Store) findEmployeeID(ctx context.Context, name string) sql.NullInt64 {
	if name == "" {
		return sql.NullInt64{}
	}
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM employees WHERE LOWER(full_name) LIKE ?",
		"%"+strings.ToLower(name)+"%").Scan(&id)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}
