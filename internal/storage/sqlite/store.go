// Package sqlite provides SQLite-backed persistence for tracker snapshots.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists snapshot blobs in a single key/value table.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a tracker SQLite store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) migrate() error {
	_, err := s.sqlDB.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		snapshot_key TEXT PRIMARY KEY,
		payload      BLOB NOT NULL,
		updated_at   INTEGER NOT NULL
	)`)
	return err
}

// Load returns the blob stored under key, or ok=false if never written.
func (s *Store) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil || s.sqlDB == nil {
		return nil, false, errors.New("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("snapshot key is required")
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE snapshot_key = ?`, key)
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	return payload, true, nil
}

// Save overwrites the blob stored under key.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("snapshot key is required")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO snapshots (snapshot_key, payload, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(snapshot_key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}
