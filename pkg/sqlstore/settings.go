package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-workboard/components/dashboard"
)

// SettingsStore implements dashboard.SettingsStore on the user_settings table.
type SettingsStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSettingsStore wraps db.
func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db, now: time.Now}
}

// Get returns the payload stored for key.
func (s *SettingsStore) Get(ctx context.Context, key dashboard.SettingsKey) (dashboard.SettingsBlob, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM user_settings WHERE owner_id = ? AND scope = ?",
		key.OwnerID, key.Scope,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlstore: get settings %s/%s: %w", key.OwnerID, key.Scope, err)
	}
	return dashboard.SettingsBlob(payload), true, nil
}

// Upsert inserts the record for key on first write and updates it afterwards.
func (s *SettingsStore) Upsert(ctx context.Context, key dashboard.SettingsKey, blob dashboard.SettingsBlob) error {
	if key.OwnerID == "" {
		return ErrMissingOwner
	}
	now := s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_settings (owner_id, scope, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (owner_id, scope) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, key.OwnerID, key.Scope, string(blob), now, now)
	if err != nil {
		return fmt.Errorf("sqlstore: upsert settings %s/%s: %w", key.OwnerID, key.Scope, err)
	}
	return nil
}

// Delete removes every settings record owned by ownerID.
func (s *SettingsStore) Delete(ctx context.Context, ownerID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM user_settings WHERE owner_id = ?", ownerID)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: delete settings for %s: %w", ownerID, err)
	}
	return res.RowsAffected()
}

var _ dashboard.SettingsStore = (*SettingsStore)(nil)
