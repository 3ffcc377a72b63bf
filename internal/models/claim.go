package models

import "time"

// ClaimStatus enumerates the workflow states of a warranty claim.
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "Pending"
	ClaimStatusApproved ClaimStatus = "Approved"
	ClaimStatusRejected ClaimStatus = "Rejected"
)

// ValidClaimStatus reports whether s is a known status value.
func ValidClaimStatus(s ClaimStatus) bool {
	switch s {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected:
		return true
	}
	return false
}

// WarrantyClaim is a customer-reported issue against a warranty record.
// CustomerName and PhoneNumber are snapshotted from the record at creation so
// claim history survives later record edits. ResolvedAt is stamped exactly
// once, the first time the claim leaves Pending.
type WarrantyClaim struct {
	ID               string      `db:"id" json:"id"`
	ClaimID          string      `db:"claim_id" json:"claim_id"`
	WarrantyRecordID string      `db:"warranty_record_id" json:"warranty_record_id"`
	CustomerName     string      `db:"customer_name" json:"customer_name"`
	PhoneNumber      string      `db:"phone_number" json:"phone_number"`
	IssueDescription string      `db:"issue_description" json:"issue_description"`
	ClaimStatus      ClaimStatus `db:"claim_status" json:"claim_status"`
	ResolvedAt       *time.Time  `db:"resolved_at" json:"resolved_at,omitempty"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"`

	WarrantyRecord *WarrantyRecord `db:"-" json:"warranty_record,omitempty"`
}

// ClaimFilter captures filtering criteria for listing claims.
type ClaimFilter struct {
	Status           ClaimStatus
	WarrantyRecordID string
	CustomerName     string
	PhoneNumber      string
	StartDate        *time.Time
	EndDate          *time.Time
	SortBy           string
	SortOrder        string
	Page             int
	PageSize         int
}

// ClaimProductStat counts claims per product, joined through the record.
type ClaimProductStat struct {
	ProductID   string `db:"product_id" json:"product_id"`
	ProductName string `db:"product_name" json:"product_name"`
	Count       int    `db:"count" json:"count"`
}

// ClaimStats aggregates claim counts for the admin dashboard.
type ClaimStats struct {
	Total     int                `json:"total"`
	Pending   int                `json:"pending"`
	Approved  int                `json:"approved"`
	Rejected  int                `json:"rejected"`
	ByProduct []ClaimProductStat `json:"by_product"`
}
