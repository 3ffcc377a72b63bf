package dto

import (
	"time"

	"github.com/faisalcam/cctv-shop-api/internal/models"
)

// CreateWarrantyRequest payload for registering a new warranty record.
// Status may be supplied to override the date-derived default, Voided
// included; when omitted the record's status follows its expiry date.
type CreateWarrantyRequest struct {
	CustomerName       string                 `json:"customer_name" validate:"required"`
	PhoneNumber        string                 `json:"phone_number" validate:"required"`
	CustomerAddress    string                 `json:"customer_address" validate:"required"`
	ProductID          string                 `json:"product_id" validate:"required,uuid"`
	QuantityPurchased  int                    `json:"quantity_purchased" validate:"required,min=1"`
	PurchaseDate       time.Time              `json:"purchase_date" validate:"required"`
	WarrantyValidUntil time.Time              `json:"warranty_valid_until" validate:"required"`
	WarrantyStatus     *models.WarrantyStatus `json:"warranty_status,omitempty"`
}

// UpdateWarrantyRequest payload for editing an existing record. All fields
// optional; only supplied fields change.
type UpdateWarrantyRequest struct {
	CustomerName       *string                `json:"customer_name,omitempty"`
	PhoneNumber        *string                `json:"phone_number,omitempty"`
	CustomerAddress    *string                `json:"customer_address,omitempty"`
	ProductID          *string                `json:"product_id,omitempty" validate:"omitempty,uuid"`
	QuantityPurchased  *int                   `json:"quantity_purchased,omitempty" validate:"omitempty,min=1"`
	PurchaseDate       *time.Time             `json:"purchase_date,omitempty"`
	WarrantyValidUntil *time.Time             `json:"warranty_valid_until,omitempty"`
	WarrantyStatus     *models.WarrantyStatus `json:"warranty_status,omitempty"`
}

// WarrantyQuery mirrors supported listing filters.
type WarrantyQuery struct {
	Status       models.WarrantyStatus `form:"status"`
	ProductID    string                `form:"product_id"`
	CustomerName string                `form:"customer_name"`
	PhoneNumber  string                `form:"phone_number"`
	StartDate    string                `form:"start_date"`
	EndDate      string                `form:"end_date"`
	SortBy       string                `form:"sort_by"`
	SortOrder    string                `form:"sort_order"`
	Page         int                   `form:"page"`
	PageSize     int                   `form:"page_size"`
}
