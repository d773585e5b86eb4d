// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store loads extracted rows into a SQLite database with one table
// per record kind. Columns follow the kind's schema order; absent
// attributes are stored as NULL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/health-extract/internal/schema"
)

// Store is a SQLite database receiving one extraction run. All tables are
// written inside a single transaction that Commit makes visible.
type Store struct {
	db   *sql.DB
	tx   *sql.Tx
	path string
	done bool
}

// Open opens or creates the database at path and begins the load
// transaction. The parent directory is created if needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	// A single connection keeps the transaction and its statements together.
	db.SetMaxOpenConns(1)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("beginning transaction on %s: %w", path, err)
	}

	return &Store{db: db, tx: tx, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// OpenSink replaces the table for name with an empty one shaped by kind's
// schema and returns a sink that inserts rows into it.
func (s *Store) OpenSink(ctx context.Context, name string, kind schema.Kind) (*TableSink, error) {
	fields, err := schema.Fields(kind)
	if err != nil {
		return nil, err
	}

	table := quoteIdent(name)
	cols := make([]string, len(fields))
	names := make([]string, len(fields))
	marks := make([]string, len(fields))
	for i, f := range fields {
		names[i] = quoteIdent(f.Name)
		cols[i] = names[i] + " " + columnType(f.Kind)
		marks[i] = "?"
	}

	statements := []string{
		`DROP TABLE IF EXISTS ` + table,
		`CREATE TABLE ` + table + ` (` + strings.Join(cols, ", ") + `)`,
	}
	for _, stmt := range statements {
		if _, err := s.tx.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("creating table %s: %w", name, err)
		}
	}

	stmt, err := s.tx.PrepareContext(ctx,
		`INSERT INTO `+table+` (`+strings.Join(names, ", ")+`) VALUES (`+strings.Join(marks, ", ")+`)`)
	if err != nil {
		return nil, fmt.Errorf("preparing insert for %s: %w", name, err)
	}

	return &TableSink{stmt: stmt, name: name, width: len(fields)}, nil
}

// Commit makes every table written through this store visible.
func (s *Store) Commit() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", s.path, err)
	}
	return nil
}

// Close rolls back an uncommitted load and releases the database. A
// transaction already ended by its context is not reported again.
func (s *Store) Close() error {
	var rollbackErr error
	if !s.done {
		s.done = true
		if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			rollbackErr = fmt.Errorf("rolling back %s: %w", s.path, err)
		}
	}
	return errors.Join(rollbackErr, s.db.Close())
}

// TableSink inserts rows into one table. Its statement belongs to the
// store's transaction, which is bound to the context given to Open.
type TableSink struct {
	stmt   *sql.Stmt
	name   string
	width  int
	rows   int
	closed bool
}

// Write inserts one row; values must be in schema order.
func (t *TableSink) Write(values []schema.Value) error {
	if len(values) != t.width {
		return fmt.Errorf("table %s: got %d values, want %d", t.name, len(values), t.width)
	}
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	if _, err := t.stmt.Exec(args...); err != nil {
		return fmt.Errorf("inserting into %s: %w", t.name, err)
	}
	t.rows++
	return nil
}

// Rows returns the number of rows inserted.
func (t *TableSink) Rows() int {
	return t.rows
}

// Close releases the prepared statement. It is safe to call more than once.
func (t *TableSink) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.stmt.Close()
}

func columnType(vk schema.ValueKind) string {
	if vk == schema.Number {
		return "REAL"
	}
	return "TEXT"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
