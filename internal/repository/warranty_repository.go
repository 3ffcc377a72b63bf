package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/faisalcam/cctv-shop-api/internal/models"
)

const warrantyColumns = "id, warranty_id, customer_name, phone_number, customer_address, product_id, quantity_purchased, purchase_date, warranty_valid_until, warranty_status, created_at, updated_at"

// WarrantyRepository handles persistence for warranty records.
type WarrantyRepository struct {
	db *sqlx.DB
}

// NewWarrantyRepository instantiates a warranty repository.
func NewWarrantyRepository(db *sqlx.DB) *WarrantyRepository {
	return &WarrantyRepository{db: db}
}

// List returns warranty records matching provided filters.
func (r *WarrantyRepository) List(ctx context.Context, filter models.WarrantyFilter) ([]models.WarrantyRecord, int, error) {
	base := "FROM warranty_records WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("warranty_status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.ProductID != "" {
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", len(args)+1))
		args = append(args, filter.ProductID)
	}
	if filter.CustomerName != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(customer_name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.CustomerName)+"%")
	}
	if filter.PhoneNumber != "" {
		conditions = append(conditions, fmt.Sprintf("phone_number LIKE $%d", len(args)+1))
		args = append(args, "%"+filter.PhoneNumber+"%")
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("purchase_date >= $%d", len(args)+1))
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("purchase_date <= $%d", len(args)+1))
		args = append(args, *filter.EndDate)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	allowedSorts := map[string]bool{
		"customer_name":        true,
		"purchase_date":        true,
		"warranty_valid_until": true,
		"warranty_status":      true,
		"created_at":           true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "created_at"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", warrantyColumns, base, sortBy, order, size, offset)

	var records []models.WarrantyRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list warranty records: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count warranty records: %w", err)
	}

	return records, total, nil
}

// FindByID loads a record by its surrogate identifier.
func (r *WarrantyRepository) FindByID(ctx context.Context, id string) (*models.WarrantyRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM warranty_records WHERE id = $1", warrantyColumns)
	var record models.WarrantyRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByWarrantyID loads a record by its business identifier (WR-...).
func (r *WarrantyRepository) FindByWarrantyID(ctx context.Context, warrantyID string) (*models.WarrantyRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM warranty_records WHERE warranty_id = $1", warrantyColumns)
	var record models.WarrantyRecord
	if err := r.db.GetContext(ctx, &record, query, warrantyID); err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByPhoneNumber returns every record registered under the phone number,
// most recent purchase first. Ties break on creation time, then id, so
// auto-selection stays deterministic.
func (r *WarrantyRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) ([]models.WarrantyRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM warranty_records WHERE phone_number = $1 ORDER BY purchase_date DESC, created_at DESC, id", warrantyColumns)
	var records []models.WarrantyRecord
	if err := r.db.SelectContext(ctx, &records, query, phoneNumber); err != nil {
		return nil, fmt.Errorf("find warranties by phone: %w", err)
	}
	return records, nil
}

// Create inserts a new warranty record.
func (r *WarrantyRepository) Create(ctx context.Context, record *models.WarrantyRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	const query = `INSERT INTO warranty_records (id, warranty_id, customer_name, phone_number, customer_address, product_id, quantity_purchased, purchase_date, warranty_valid_until, warranty_status, created_at, updated_at) VALUES (:id, :warranty_id, :customer_name, :phone_number, :customer_address, :product_id, :quantity_purchased, :purchase_date, :warranty_valid_until, :warranty_status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create warranty record: %w", err)
	}
	return nil
}

// Update modifies an existing record.
func (r *WarrantyRepository) Update(ctx context.Context, record *models.WarrantyRecord) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `UPDATE warranty_records SET customer_name = :customer_name, phone_number = :phone_number, customer_address = :customer_address, product_id = :product_id, quantity_purchased = :quantity_purchased, purchase_date = :purchase_date, warranty_valid_until = :warranty_valid_until, warranty_status = :warranty_status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("update warranty record: %w", err)
	}
	return nil
}

// Delete removes a record permanently. Claims referencing it keep their
// snapshot fields and a dangling record reference.
func (r *WarrantyRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM warranty_records WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete warranty record: %w", err)
	}
	return nil
}

// SweepExpired flips every Active record whose validity date has passed to
// Expired and reports how many rows changed. Voided records are untouched.
func (r *WarrantyRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE warranty_records SET warranty_status = $1, updated_at = $2 WHERE warranty_status = $3 AND warranty_valid_until < $2`, models.WarrantyStatusExpired, now.UTC(), models.WarrantyStatusActive)
	if err != nil {
		return 0, fmt.Errorf("sweep expired warranties: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sweep expired rows affected: %w", err)
	}
	return n, nil
}

// Stats aggregates record counts overall and per product.
func (r *WarrantyRepository) Stats(ctx context.Context) (*models.WarrantyStats, error) {
	var counts struct {
		Total   int `db:"total"`
		Active  int `db:"active"`
		Expired int `db:"expired"`
		Voided  int `db:"voided"`
	}
	const countQuery = `SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE warranty_status = 'Active') AS active, COUNT(*) FILTER (WHERE warranty_status = 'Expired') AS expired, COUNT(*) FILTER (WHERE warranty_status = 'Voided') AS voided FROM warranty_records`
	if err := r.db.GetContext(ctx, &counts, countQuery); err != nil {
		return nil, fmt.Errorf("warranty stats counts: %w", err)
	}

	const productQuery = `SELECT w.product_id, p.product_name, COUNT(*) AS count, SUM(w.quantity_purchased) AS total_quantity FROM warranty_records w JOIN products p ON p.id = w.product_id GROUP BY w.product_id, p.product_name ORDER BY count DESC`
	var byProduct []models.WarrantyProductStat
	if err := r.db.SelectContext(ctx, &byProduct, productQuery); err != nil {
		return nil, fmt.Errorf("warranty stats by product: %w", err)
	}

	return &models.WarrantyStats{
		Total:     counts.Total,
		Active:    counts.Active,
		Expired:   counts.Expired,
		Voided:    counts.Voided,
		ByProduct: byProduct,
	}, nil
}

// IsUniqueViolation reports whether err is a Postgres duplicate-key error,
// used to detect business-ID collisions worth retrying.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
