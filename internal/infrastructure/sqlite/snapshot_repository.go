package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parley/internal/chat/service"
)

// snapshotRepository implements service.Store over the snapshots table.
// One row per well-known key; Save replaces the prior value in place.
type snapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a snapshot store backed by db.
func NewSnapshotRepository(db *DB) service.Store {
	return &snapshotRepository{db: db.conn}
}

// Ensure snapshotRepository implements service.Store.
var _ service.Store = (*snapshotRepository)(nil)

// Load returns the raw snapshot under key. A missing row is not an error;
// it comes back as nil so the codec falls through to defaults.
func (r *snapshotRepository) Load(key string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRow(`SELECT data FROM snapshots WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return data, nil
}

// Save upserts the snapshot under key, replacing any prior value.
func (r *snapshotRepository) Save(key string, data []byte) error {
	_, err := r.db.Exec(
		`INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}
