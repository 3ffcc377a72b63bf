package models

import "time"

// WarrantyStatus enumerates the lifecycle states of a warranty record.
// Voided is set by admins only and is never assigned automatically.
type WarrantyStatus string

const (
	WarrantyStatusActive  WarrantyStatus = "Active"
	WarrantyStatusExpired WarrantyStatus = "Expired"
	WarrantyStatusVoided  WarrantyStatus = "Voided"
)

// ValidWarrantyStatus reports whether s is a known status value.
func ValidWarrantyStatus(s WarrantyStatus) bool {
	switch s {
	case WarrantyStatusActive, WarrantyStatusExpired, WarrantyStatusVoided:
		return true
	}
	return false
}

// WarrantyRecord binds a purchase, a customer, and a warranty expiry date.
// WarrantyID is the human-readable business identifier (WR-XXXXXXXX-XXX)
// customers quote over the phone; ID is the surrogate row key.
type WarrantyRecord struct {
	ID                 string         `db:"id" json:"id"`
	WarrantyID         string         `db:"warranty_id" json:"warranty_id"`
	CustomerName       string         `db:"customer_name" json:"customer_name"`
	PhoneNumber        string         `db:"phone_number" json:"phone_number"`
	CustomerAddress    string         `db:"customer_address" json:"customer_address"`
	ProductID          string         `db:"product_id" json:"product_id"`
	QuantityPurchased  int            `db:"quantity_purchased" json:"quantity_purchased"`
	PurchaseDate       time.Time      `db:"purchase_date" json:"purchase_date"`
	WarrantyValidUntil time.Time      `db:"warranty_valid_until" json:"warranty_valid_until"`
	WarrantyStatus     WarrantyStatus `db:"warranty_status" json:"warranty_status"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`

	Product *Product `db:"-" json:"product,omitempty"`
}

// WarrantyFilter captures filtering criteria for listing warranty records.
type WarrantyFilter struct {
	Status       WarrantyStatus
	ProductID    string
	CustomerName string
	PhoneNumber  string
	StartDate    *time.Time
	EndDate      *time.Time
	SortBy       string
	SortOrder    string
	Page         int
	PageSize     int
}

// WarrantyProductStat is one per-product aggregation bucket.
type WarrantyProductStat struct {
	ProductID     string `db:"product_id" json:"product_id"`
	ProductName   string `db:"product_name" json:"product_name"`
	Count         int    `db:"count" json:"count"`
	TotalQuantity int    `db:"total_quantity" json:"total_quantity"`
}

// WarrantyStats aggregates record counts for the admin dashboard.
type WarrantyStats struct {
	Total     int                   `json:"total"`
	Active    int                   `json:"active"`
	Expired   int                   `json:"expired"`
	Voided    int                   `json:"voided"`
	ByProduct []WarrantyProductStat `json:"by_product"`
}

// SweepResult reports the outcome of an expiry sweep run.
type SweepResult struct {
	ModifiedCount int64 `json:"modified_count"`
}

// EligibilityResult partitions a phone number's warranty records by status.
type EligibilityResult struct {
	Eligible        bool             `json:"eligible"`
	TotalWarranties int              `json:"total_warranties"`
	Active          []WarrantyRecord `json:"active"`
	Expired         []WarrantyRecord `json:"expired"`
	Voided          []WarrantyRecord `json:"voided"`
}
