package hosted

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/goliatone/go-workboard/components/dedupe"
)

const productsTable = "products"

type productRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductStore implements dedupe.Store over the products table, scoped by
// the user_id column.
type ProductStore struct {
	client *Client
}

// NewProductStore wraps client.
func NewProductStore(client *Client) *ProductStore {
	return &ProductStore{client: client}
}

func (s *ProductStore) ListRecords(ctx context.Context, ownerID string) ([]dedupe.Record, error) {
	query := url.Values{}
	query.Set("select", "id,name,created_at")
	query.Set("user_id", eq(ownerID))

	var rows []productRow
	if err := s.client.do(ctx, request{method: http.MethodGet, table: productsTable, query: query}, &rows); err != nil {
		return nil, err
	}
	records := make([]dedupe.Record, len(rows))
	for i, row := range rows {
		records[i] = dedupe.Record{ID: row.ID, NaturalKey: row.Name, CreatedAt: row.CreatedAt}
	}
	return records, nil
}

func (s *ProductStore) DeleteRecords(ctx context.Context, ownerID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := url.Values{}
	query.Set("user_id", eq(ownerID))
	query.Set("id", inList(ids))
	return s.client.do(ctx, request{
		method: http.MethodDelete,
		table:  productsTable,
		query:  query,
		prefer: "return=minimal",
	}, nil)
}

var _ dedupe.Store = (*ProductStore)(nil)
