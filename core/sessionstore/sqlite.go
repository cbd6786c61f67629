package sessionstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/biblio2ie/biblio/core/session"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS session_snapshots (
	storage_key TEXT PRIMARY KEY,
	payload     TEXT NOT NULL,
	updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLite persists snapshots in a session_snapshots table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite ensures the table exists.
func NewSQLite(ctx context.Context, db *sql.DB) (*SQLite, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("create session_snapshots: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context, key string) (session.Snapshot, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM session_snapshots WHERE storage_key = ?`, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Snapshot{}, false, nil
	}
	if err != nil {
		return session.Snapshot{}, false, err
	}
	snap, err := decode([]byte(payload))
	if err != nil {
		return session.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *SQLite) Save(ctx context.Context, key string, snap session.Snapshot) error {
	raw, err := encode(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_snapshots (storage_key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(storage_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(raw),
	)
	return err
}
