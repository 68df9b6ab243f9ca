package hosted

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/goliatone/go-workboard/components/dashboard"
)

const settingsTable = "user_settings"

type settingsRow struct {
	OwnerID string          `json:"owner_id"`
	Scope   string          `json:"scope"`
	Payload json.RawMessage `json:"payload"`
}

// SettingsStore implements dashboard.SettingsStore over the user_settings table.
type SettingsStore struct {
	client *Client
}

// NewSettingsStore wraps client.
func NewSettingsStore(client *Client) *SettingsStore {
	return &SettingsStore{client: client}
}

func (s *SettingsStore) Get(ctx context.Context, key dashboard.SettingsKey) (dashboard.SettingsBlob, bool, error) {
	query := url.Values{}
	query.Set("select", "owner_id,scope,payload")
	query.Set("owner_id", eq(key.OwnerID))
	query.Set("scope", eq(key.Scope))
	query.Set("limit", "1")

	var rows []settingsRow
	if err := s.client.do(ctx, request{method: http.MethodGet, table: settingsTable, query: query}, &rows); err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return dashboard.SettingsBlob(rows[0].Payload), true, nil
}

// Upsert relies on the (owner_id, scope) unique constraint to merge.
func (s *SettingsStore) Upsert(ctx context.Context, key dashboard.SettingsKey, blob dashboard.SettingsBlob) error {
	query := url.Values{}
	query.Set("on_conflict", "owner_id,scope")
	return s.client.do(ctx, request{
		method: http.MethodPost,
		table:  settingsTable,
		query:  query,
		prefer: "resolution=merge-duplicates,return=minimal",
		body:   []settingsRow{{OwnerID: key.OwnerID, Scope: key.Scope, Payload: json.RawMessage(blob)}},
	}, nil)
}

var _ dashboard.SettingsStore = (*SettingsStore)(nil)
