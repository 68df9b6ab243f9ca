package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-workboard/components/dedupe"
)

// Product is a row of the products table.
type Product struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"user_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductStore reads and writes products scoped by owner. It implements
// dedupe.Store with the product name as natural key.
type ProductStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewProductStore wraps db.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db, now: time.Now}
}

// Insert stores p, filling ID, Status and CreatedAt when empty, and returns
// the stored row.
func (s *ProductStore) Insert(ctx context.Context, p Product) (Product, error) {
	if p.OwnerID == "" {
		return Product{}, ErrMissingOwner
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = "active"
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	p.CreatedAt = p.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, owner_id, name, sku, price, stock, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.OwnerID, p.Name, p.SKU, p.Price, p.Stock, p.Status, p.CreatedAt)
	if err != nil {
		return Product{}, fmt.Errorf("sqlstore: insert product %s: %w", p.ID, err)
	}
	return p, nil
}

// List returns the owner's products in insertion order.
func (s *ProductStore) List(ctx context.Context, ownerID string) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, sku, price, stock, status, created_at
		FROM products WHERE owner_id = ? ORDER BY rowid
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.SKU, &p.Price, &p.Stock, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlstore: scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListRecords projects the owner's products onto dedupe records.
func (s *ProductStore) ListRecords(ctx context.Context, ownerID string) ([]dedupe.Record, error) {
	products, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	records := make([]dedupe.Record, 0, len(products))
	for _, p := range products {
		records = append(records, dedupe.Record{ID: p.ID, NaturalKey: p.Name, CreatedAt: p.CreatedAt})
	}
	return records, nil
}

// DeleteRecords removes the given ids. Rows owned by someone else are left
// untouched.
func (s *ProductStore) DeleteRecords(ctx context.Context, ownerID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, ownerID)
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := "DELETE FROM products WHERE owner_id = ? AND id IN (" + placeholders + ")"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlstore: delete %d products: %w", len(ids), err)
	}
	return nil
}

var _ dedupe.Store = (*ProductStore)(nil)
