// Package sqlitestore keeps settings in a SQLite key-value table, one row per
// settings key with a JSON-encoded value.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hashicorp/go-hclog"
	_ "modernc.org/sqlite"

	"github.com/jmylchreest/domaintint/internal/config"
	"github.com/jmylchreest/domaintint/internal/settings"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Store is a settings.Store backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger hclog.Logger
}

var _ settings.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and ensures the
// settings table exists. A nil logger discards output.
func Open(ctx context.Context, path string, logger hclog.Logger) (*Store, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if path != ":memory:" {
		if err := config.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and serialises
	// writers within the process.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	s := &Store{db: db, path: path, logger: logger.Named("sqlitestore")}
	s.logger.Debug("opened settings database", "path", path)
	return s, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load implements settings.Store. Rows with unknown keys are ignored.
func (s *Store) Load(ctx context.Context) (*settings.Settings, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string][]byte)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan settings row: %w", err)
		}
		values[key] = []byte(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	s.logger.Debug("loaded settings", "keys", len(values))
	return settings.DecodeValues(values)
}

// Save implements settings.Store. Every recognised key is written in one
// transaction.
func (s *Store) Save(ctx context.Context, snap *settings.Settings) error {
	c := snap.Clone()
	c.Normalize()

	values, err := settings.EncodeValues(c)
	if err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value=excluded.value
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, key := range settings.Keys() {
			if _, err := stmt.ExecContext(ctx, key, string(values[key])); err != nil {
				return fmt.Errorf("failed to upsert %s: %w", key, err)
			}
		}
		s.logger.Debug("saved settings", "keys", len(values))
		return nil
	})
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}
