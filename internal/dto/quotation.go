package dto

import "github.com/faisalcam/cctv-shop-api/internal/models"

// CreateQuotationRequest is the multipart form payload for a public quote
// request. Photos arrive as separate file parts, capped at three.
type CreateQuotationRequest struct {
	CustomerName           string               `form:"customer_name" validate:"required"`
	PhoneNumber            string               `form:"phone_number" validate:"required"`
	Email                  string               `form:"email" validate:"omitempty,email"`
	ServiceType            models.ServiceType   `form:"service_type" validate:"required"`
	CameraType             models.CameraType    `form:"camera_type" validate:"required"`
	Quantity               int                  `form:"quantity" validate:"required,min=1"`
	ProblemDescription     string               `form:"problem_description"`
	InstallationLocation   string               `form:"installation_location" validate:"required"`
	PreferredContactMethod models.ContactMethod `form:"preferred_contact_method" validate:"required"`
}

// UpdateQuotationRequest payload for admin triage of a quotation.
type UpdateQuotationRequest struct {
	Status          *models.QuotationStatus `json:"status,omitempty"`
	AssignedAdminID *string                 `json:"assigned_admin_id,omitempty" validate:"omitempty,uuid"`
	AdminNotes      *string                 `json:"admin_notes,omitempty"`
}

// QuotationQuery mirrors supported listing filters.
type QuotationQuery struct {
	Status          models.QuotationStatus `form:"status"`
	ServiceType     models.ServiceType     `form:"service_type"`
	CameraType      models.CameraType      `form:"camera_type"`
	AssignedAdminID string                 `form:"assigned_admin_id"`
	ContactMethod   models.ContactMethod   `form:"contact_method"`
	CustomerName    string                 `form:"customer_name"`
	PhoneNumber     string                 `form:"phone_number"`
	StartDate       string                 `form:"start_date"`
	EndDate         string                 `form:"end_date"`
	SortBy          string                 `form:"sort_by"`
	SortOrder       string                 `form:"sort_order"`
	Page            int                    `form:"page"`
	PageSize        int                    `form:"page_size"`
}
