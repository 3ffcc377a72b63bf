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

const quotationColumns = "id, customer_name, phone_number, email, service_type, camera_type, quantity, problem_description, installation_location, images, preferred_contact_method, quotation_status, assigned_admin_id, admin_notes, created_at, updated_at"

// QuotationRepository handles persistence for quote requests.
type QuotationRepository struct {
	db *sqlx.DB
}

// NewQuotationRepository instantiates a quotation repository.
func NewQuotationRepository(db *sqlx.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

// List returns quotations matching provided filters.
func (r *QuotationRepository) List(ctx context.Context, filter models.QuotationFilter) ([]models.Quotation, int, error) {
	base := "FROM quotations WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("quotation_status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.ServiceType != "" {
		conditions = append(conditions, fmt.Sprintf("service_type = $%d", len(args)+1))
		args = append(args, filter.ServiceType)
	}
	if filter.CameraType != "" {
		conditions = append(conditions, fmt.Sprintf("camera_type = $%d", len(args)+1))
		args = append(args, filter.CameraType)
	}
	if filter.AssignedAdminID != "" {
		conditions = append(conditions, fmt.Sprintf("assigned_admin_id = $%d", len(args)+1))
		args = append(args, filter.AssignedAdminID)
	}
	if filter.ContactMethod != "" {
		conditions = append(conditions, fmt.Sprintf("preferred_contact_method = $%d", len(args)+1))
		args = append(args, filter.ContactMethod)
	}
	if filter.CustomerName != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(customer_name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.CustomerName)+"%")
	}
	if filter.PhoneNumber != "" {
		conditions = append(conditions, fmt.Sprintf("phone_number = $%d", len(args)+1))
		args = append(args, filter.PhoneNumber)
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
		"customer_name":    true,
		"service_type":     true,
		"quotation_status": true,
		"created_at":       true,
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", quotationColumns, base, sortBy, order, size, offset)

	var quotations []models.Quotation
	if err := r.db.SelectContext(ctx, &quotations, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list quotations: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count quotations: %w", err)
	}

	return quotations, total, nil
}

// FindByID loads a quotation by identifier.
func (r *QuotationRepository) FindByID(ctx context.Context, id string) (*models.Quotation, error) {
	query := fmt.Sprintf("SELECT %s FROM quotations WHERE id = $1", quotationColumns)
	var quotation models.Quotation
	if err := r.db.GetContext(ctx, &quotation, query, id); err != nil {
		return nil, err
	}
	return &quotation, nil
}

// Create inserts a new quotation.
func (r *QuotationRepository) Create(ctx context.Context, quotation *models.Quotation) error {
	if quotation.ID == "" {
		quotation.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if quotation.CreatedAt.IsZero() {
		quotation.CreatedAt = now
	}
	quotation.UpdatedAt = now

	const query = `INSERT INTO quotations (id, customer_name, phone_number, email, service_type, camera_type, quantity, problem_description, installation_location, images, preferred_contact_method, quotation_status, assigned_admin_id, admin_notes, created_at, updated_at) VALUES (:id, :customer_name, :phone_number, :email, :service_type, :camera_type, :quantity, :problem_description, :installation_location, :images, :preferred_contact_method, :quotation_status, :assigned_admin_id, :admin_notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, quotation); err != nil {
		return fmt.Errorf("create quotation: %w", err)
	}
	return nil
}

// Update modifies an existing quotation.
func (r *QuotationRepository) Update(ctx context.Context, quotation *models.Quotation) error {
	quotation.UpdatedAt = time.Now().UTC()
	const query = `UPDATE quotations SET quotation_status = :quotation_status, assigned_admin_id = :assigned_admin_id, admin_notes = :admin_notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, quotation); err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	return nil
}

// Delete removes a quotation permanently.
func (r *QuotationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quotations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete quotation: %w", err)
	}
	return nil
}
