package dto

import "github.com/faisalcam/cctv-shop-api/internal/models"

// CreateClaimRequest payload for filing a claim. The phone number is the
// customer's credential; WarrantyRecordID is optional and, when present,
// must belong to that phone number. When absent the most recent active
// warranty is selected automatically.
type CreateClaimRequest struct {
	PhoneNumber      string `json:"phone_number" validate:"required"`
	WarrantyRecordID string `json:"warranty_record_id,omitempty" validate:"omitempty,uuid"`
	IssueDescription string `json:"issue_description" validate:"required"`
}

// UpdateClaimRequest payload for editing a claim's issue description.
type UpdateClaimRequest struct {
	IssueDescription *string `json:"issue_description,omitempty"`
}

// UpdateClaimStatusRequest captures the admin decision on a claim.
type UpdateClaimStatusRequest struct {
	Status models.ClaimStatus `json:"status" validate:"required"`
}

// ClaimQuery mirrors supported listing filters.
type ClaimQuery struct {
	Status           models.ClaimStatus `form:"status"`
	WarrantyRecordID string             `form:"warranty_record_id"`
	CustomerName     string             `form:"customer_name"`
	PhoneNumber      string             `form:"phone_number"`
	StartDate        string             `form:"start_date"`
	EndDate          string             `form:"end_date"`
	SortBy           string             `form:"sort_by"`
	SortOrder        string             `form:"sort_order"`
	Page             int                `form:"page"`
	PageSize         int                `form:"page_size"`
}
