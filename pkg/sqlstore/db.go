// Package sqlstore persists layout settings, products and API tokens in SQLite.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("sqlstore: not found")
	// ErrMissingOwner is returned when a write has no owner id.
	ErrMissingOwner = errors.New("sqlstore: owner id is required")
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns int
	MaxIdleConns int
}

// Open connects to the SQLite database at path, applies pending migrations and
// returns the handle. An in-memory database is pinned to a single connection
// so every caller sees the same data.
func Open(path string, opts Options) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: ping database: %w", err)
	}

	if path == MemoryPath {
		opts.MaxOpenConns = 1
		opts.MaxIdleConns = 1
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
