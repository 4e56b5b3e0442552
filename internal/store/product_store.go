package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ElementTypeProduct is the element_type value for product-owned URLs.
// Products are the only element kind this service manages today; the urls
// table keeps the type column so other catalog entities can attach URLs
// without a schema change.
const ElementTypeProduct = "product"

// Product represents a row in the products table.
type Product struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ProductStore is the sqlx-backed store for products.
type ProductStore struct {
	db *sqlx.DB
}

func NewProductStore(db *sqlx.DB) *ProductStore {
	return &ProductStore{db: db}
}

// Create inserts a product owned by tenantID.
func (s *ProductStore) Create(ctx context.Context, tenantID, name string) (*Product, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, tenant_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, tenantID, name, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the product matching id, or ErrNotFound.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := s.db.GetContext(ctx, &p, `SELECT * FROM products WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByTenant returns all products owned by tenantID ordered by name.
func (s *ProductStore) ListByTenant(ctx context.Context, tenantID string) ([]*Product, error) {
	var products []*Product
	err := s.db.SelectContext(ctx, &products, `
		SELECT * FROM products WHERE tenant_id = ? ORDER BY name ASC, id ASC
	`, tenantID)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ElementExists reports whether an element of the given type and id exists.
// Unknown element types report false.
func (s *ProductStore) ElementExists(ctx context.Context, elementType, elementID string) (bool, error) {
	if elementType != ElementTypeProduct {
		return false, nil
	}
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products WHERE id = ?`, elementID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
