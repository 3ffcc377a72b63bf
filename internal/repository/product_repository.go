package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/faisalcam/cctv-shop-api/internal/models"
)

const productColumns = "id, sku, product_name, brand, camera_type, resolution, lens_type, night_vision, storage_support, warranty_months, price, in_stock, created_at, updated_at"

// ProductRepository reads catalog items referenced by warranty records.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository instantiates a product repository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByID loads a product by identifier.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)
	var product models.Product
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads all products with the given identifiers in one round trip.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = ANY($1)", productColumns)
	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}
	return products, nil
}

// Exists reports whether the product id references a catalog row.
func (r *ProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check product exists: %w", err)
	}
	return exists, nil
}
