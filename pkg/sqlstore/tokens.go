package sqlstore

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// TokenStore issues and resolves opaque bearer tokens.
type TokenStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewTokenStore wraps db.
func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db, now: time.Now}
}

// Issue creates a new token for ownerID.
func (s *TokenStore) Issue(ctx context.Context, ownerID string) (string, error) {
	if ownerID == "" {
		return "", ErrMissingOwner
	}
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sqlstore: generate token: %w", err)
	}
	token := hex.EncodeToString(buf)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO api_tokens (token, owner_id, created_at) VALUES (?, ?, ?)",
		token, ownerID, s.now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("sqlstore: issue token: %w", err)
	}
	return token, nil
}

// Revoke marks token unusable. Revoking an unknown token returns ErrNotFound.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE api_tokens SET revoked_at = ? WHERE token = ? AND revoked_at IS NULL",
		s.now().UTC(), token,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: revoke token: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ResolveToken returns the owner of an active token, or ErrNotFound.
func (s *TokenStore) ResolveToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNotFound
	}
	var owner string
	err := s.db.QueryRowContext(ctx,
		"SELECT owner_id FROM api_tokens WHERE token = ? AND revoked_at IS NULL",
		token,
	).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("sqlstore: resolve token: %w", err)
	}
	return owner, nil
}
