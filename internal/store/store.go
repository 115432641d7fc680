// Package store persists exported profiles to a local SQLite database, so
// the HTTP adapter can look a profile up by ID across requests instead of
// holding every profile in memory.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	exported   TEXT NOT NULL
);
`

// Store wraps a SQLite database holding exported profile records.
type Store struct {
	db *sql.DB
}

// Config configures Open.
type Config struct {
	Path         string
	MaxOpenConns int
}

// DefaultConfig returns sensible defaults for a single-writer local cache.
func DefaultConfig(path string) Config {
	return Config{
		Path:         path,
		MaxOpenConns: 1,
	}
}

// Open opens or creates the SQLite database at cfg.Path and applies schema.
func Open(cfg Config) (*Store, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put records an exported profile under id.
func (s *Store) Put(ctx context.Context, id string, exported map[string]any) error {
	bin, err := json.Marshal(exported)
	if err != nil {
		return fmt.Errorf("marshal exported profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, created_at, exported) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET exported = excluded.exported`,
		id, time.Now(), string(bin),
	)
	return err
}

// Get looks up an exported profile by id.
func (s *Store) Get(ctx context.Context, id string) (map[string]any, error) {
	var bin string
	err := s.db.QueryRowContext(ctx, `SELECT exported FROM profiles WHERE id = ?`, id).Scan(&bin)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var exported map[string]any
	if err := json.Unmarshal([]byte(bin), &exported); err != nil {
		return nil, fmt.Errorf("unmarshal exported profile: %w", err)
	}
	return exported, nil
}

// List returns every stored profile id, most recently created first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ErrNotFound is returned by Get when no profile is stored under the given id.
var ErrNotFound = fmt.Errorf("store: profile not found")
