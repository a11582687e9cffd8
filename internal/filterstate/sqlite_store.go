package filterstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/rpattn/clientdesk/internal/domain"
)

// SQLiteStore keeps the snapshot in a key/value table of a SQLite database.
type SQLiteStore struct {
	db  *sqlx.DB
	key string
}

// NewSQLiteStore opens (or creates) the database at path. Use ":memory:" in tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("connecting to state db : %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQLiteStore{db: db, key: LastFilterKey}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing state db : %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (domain.ClientFilter, error) {
	var payload []byte
	err := s.db.GetContext(ctx, &payload, `SELECT value FROM kv WHERE key = ?`, s.key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ClientFilter{}, ErrNoSnapshot
		}
		return domain.ClientFilter{}, fmt.Errorf("getting filter snapshot: %w", err)
	}
	return Decode(payload)
}

func (s *SQLiteStore) Save(ctx context.Context, filter domain.ClientFilter) error {
	payload, err := Encode(filter)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, payload, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("updating filter snapshot: %w", err)
	}
	return nil
}
