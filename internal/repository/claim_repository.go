package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/faisalcam/cctv-shop-api/internal/models"
)

const claimColumns = "id, claim_id, warranty_record_id, customer_name, phone_number, issue_description, claim_status, resolved_at, created_at, updated_at"

// ClaimRepository handles persistence for warranty claims.
type ClaimRepository struct {
	db *sqlx.DB
}

// NewClaimRepository instantiates a claim repository.
func NewClaimRepository(db *sqlx.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// List returns claims matching provided filters.
func (r *ClaimRepository) List(ctx context.Context, filter models.ClaimFilter) ([]models.WarrantyClaim, int, error) {
	base := "FROM warranty_claims WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("claim_status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.WarrantyRecordID != "" {
		conditions = append(conditions, fmt.Sprintf("warranty_record_id = $%d", len(args)+1))
		args = append(args, filter.WarrantyRecordID)
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
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)+1))
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)+1))
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
		"customer_name": true,
		"claim_status":  true,
		"resolved_at":   true,
		"created_at":    true,
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", claimColumns, base, sortBy, order, size, offset)

	var claims []models.WarrantyClaim
	if err := r.db.SelectContext(ctx, &claims, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list claims: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count claims: %w", err)
	}

	return claims, total, nil
}

// FindByID loads a claim by its surrogate identifier.
func (r *ClaimRepository) FindByID(ctx context.Context, id string) (*models.WarrantyClaim, error) {
	query := fmt.Sprintf("SELECT %s FROM warranty_claims WHERE id = $1", claimColumns)
	var claim models.WarrantyClaim
	if err := r.db.GetContext(ctx, &claim, query, id); err != nil {
		return nil, err
	}
	return &claim, nil
}

// FindByClaimID loads a claim by its business identifier (WC-...).
func (r *ClaimRepository) FindByClaimID(ctx context.Context, claimID string) (*models.WarrantyClaim, error) {
	query := fmt.Sprintf("SELECT %s FROM warranty_claims WHERE claim_id = $1", claimColumns)
	var claim models.WarrantyClaim
	if err := r.db.GetContext(ctx, &claim, query, claimID); err != nil {
		return nil, err
	}
	return &claim, nil
}

// FindByPhoneNumber returns claims filed under the phone number, newest first.
func (r *ClaimRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) ([]models.WarrantyClaim, error) {
	query := fmt.Sprintf("SELECT %s FROM warranty_claims WHERE phone_number = $1 ORDER BY created_at DESC", claimColumns)
	var claims []models.WarrantyClaim
	if err := r.db.SelectContext(ctx, &claims, query, phoneNumber); err != nil {
		return nil, fmt.Errorf("find claims by phone: %w", err)
	}
	return claims, nil
}

// Create inserts a new claim.
func (r *ClaimRepository) Create(ctx context.Context, claim *models.WarrantyClaim) error {
	if claim.ID == "" {
		claim.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = now
	}
	claim.UpdatedAt = now

	const query = `INSERT INTO warranty_claims (id, claim_id, warranty_record_id, customer_name, phone_number, issue_description, claim_status, resolved_at, created_at, updated_at) VALUES (:id, :claim_id, :warranty_record_id, :customer_name, :phone_number, :issue_description, :claim_status, :resolved_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, claim); err != nil {
		return fmt.Errorf("create claim: %w", err)
	}
	return nil
}

// Update modifies an existing claim.
func (r *ClaimRepository) Update(ctx context.Context, claim *models.WarrantyClaim) error {
	claim.UpdatedAt = time.Now().UTC()
	const query = `UPDATE warranty_claims SET issue_description = :issue_description, claim_status = :claim_status, resolved_at = :resolved_at, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, claim); err != nil {
		return fmt.Errorf("update claim: %w", err)
	}
	return nil
}

// Delete removes a claim permanently.
func (r *ClaimRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM warranty_claims WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}
	return nil
}

// Stats aggregates claim counts overall and per product, joined through the
// warranty record when it still exists.
func (r *ClaimRepository) Stats(ctx context.Context) (*models.ClaimStats, error) {
	var counts struct {
		Total    int `db:"total"`
		Pending  int `db:"pending"`
		Approved int `db:"approved"`
		Rejected int `db:"rejected"`
	}
	const countQuery = `SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE claim_status = 'Pending') AS pending, COUNT(*) FILTER (WHERE claim_status = 'Approved') AS approved, COUNT(*) FILTER (WHERE claim_status = 'Rejected') AS rejected FROM warranty_claims`
	if err := r.db.GetContext(ctx, &counts, countQuery); err != nil {
		return nil, fmt.Errorf("claim stats counts: %w", err)
	}

	const productQuery = `SELECT w.product_id, p.product_name, COUNT(*) AS count FROM warranty_claims c JOIN warranty_records w ON w.id = c.warranty_record_id JOIN products p ON p.id = w.product_id GROUP BY w.product_id, p.product_name ORDER BY count DESC`
	var byProduct []models.ClaimProductStat
	if err := r.db.SelectContext(ctx, &byProduct, productQuery); err != nil {
		return nil, fmt.Errorf("claim stats by product: %w", err)
	}

	return &models.ClaimStats{
		Total:     counts.Total,
		Pending:   counts.Pending,
		Approved:  counts.Approved,
		Rejected:  counts.Rejected,
		ByProduct: byProduct,
	}, nil
}
