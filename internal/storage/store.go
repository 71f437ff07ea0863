// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage: store is closed")

// =============================================================================
// STORE
// =============================================================================

// Store is the session database. Each process run gets a fresh
// session id; history rows are tagged with it so a host can tell
// runs apart.
type Store struct {
	db        *sql.DB
	sessionID string
}

// Open opens (or creates) the database at path and initializes the
// schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer at a time; a bigger pool only adds
	// lock contention.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:        db,
		sessionID: uuid.NewString(),
	}, nil
}

func initSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	line       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_created ON history(created_at);

CREATE TABLE IF NOT EXISTS variables (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SessionID returns the id assigned to this process run.
func (s *Store) SessionID() string {
	return s.sessionID
}

// =============================================================================
// HISTORY
// =============================================================================

// AppendHistory records one dispatched line.
func (s *Store) AppendHistory(line string) error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.Exec(
		`INSERT INTO history (session_id, line, created_at) VALUES (?, ?, ?)`,
		s.sessionID, line, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// RecentHistory returns up to limit history lines across all
// sessions, oldest first.
func (s *Store) RecentHistory(limit int) ([]string, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.Query(
		`SELECT line FROM (
			SELECT id, line FROM history ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ClearHistory removes all history rows.
func (s *Store) ClearHistory() error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.Exec(`DELETE FROM history`)
	return err
}

// =============================================================================
// VARIABLES
// =============================================================================

// SaveVariable upserts one variable binding.
func (s *Store) SaveVariable(name, value string) error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.Exec(
		`INSERT INTO variables (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		name, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save variable %q: %w", name, err)
	}
	return nil
}

// DeleteVariable removes a binding. Deleting an absent name is not
// an error.
func (s *Store) DeleteVariable(name string) error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.Exec(`DELETE FROM variables WHERE name = ?`, name)
	return err
}

// Variables returns all persisted bindings in name order.
func (s *Store) Variables() (map[string]string, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.Query(`SELECT name, value FROM variables ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query variables: %w", err)
	}
	defer rows.Close()

	vars := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan variable row: %w", err)
		}
		vars[name] = value
	}
	return vars, rows.Err()
}
