package models

import (
	"time"

	"github.com/lib/pq"
)

// ServiceType enumerates the services a quotation may request.
type ServiceType string

const (
	ServiceTypeSelling         ServiceType = "Selling"
	ServiceTypeInstallation    ServiceType = "Installation"
	ServiceTypeTroubleshooting ServiceType = "Troubleshooting"
)

// QuotationStatus enumerates quotation workflow states.
type QuotationStatus string

const (
	QuotationStatusPending   QuotationStatus = "Pending"
	QuotationStatusContacted QuotationStatus = "Contacted"
	QuotationStatusClosed    QuotationStatus = "Closed"
)

// ValidQuotationStatus reports whether s is a known status value.
func ValidQuotationStatus(s QuotationStatus) bool {
	switch s {
	case QuotationStatusPending, QuotationStatusContacted, QuotationStatusClosed:
		return true
	}
	return false
}

// ContactMethod is the customer's preferred callback channel.
type ContactMethod string

const (
	ContactMethodCall     ContactMethod = "Call"
	ContactMethodWhatsApp ContactMethod = "WhatsApp"
)

// Quotation is a public quote request, optionally with site photos.
type Quotation struct {
	ID                     string          `db:"id" json:"id"`
	CustomerName           string          `db:"customer_name" json:"customer_name"`
	PhoneNumber            string          `db:"phone_number" json:"phone_number"`
	Email                  *string         `db:"email" json:"email,omitempty"`
	ServiceType            ServiceType     `db:"service_type" json:"service_type"`
	CameraType             CameraType      `db:"camera_type" json:"camera_type"`
	Quantity               int             `db:"quantity" json:"quantity"`
	ProblemDescription     *string         `db:"problem_description" json:"problem_description,omitempty"`
	InstallationLocation   string          `db:"installation_location" json:"installation_location"`
	Images                 pq.StringArray  `db:"images" json:"images"`
	PreferredContactMethod ContactMethod   `db:"preferred_contact_method" json:"preferred_contact_method"`
	QuotationStatus        QuotationStatus `db:"quotation_status" json:"quotation_status"`
	AssignedAdminID        *string         `db:"assigned_admin_id" json:"assigned_admin_id,omitempty"`
	AdminNotes             *string         `db:"admin_notes" json:"admin_notes,omitempty"`
	CreatedAt              time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time       `db:"updated_at" json:"updated_at"`
}

// QuotationFilter captures filtering criteria for listing quotations.
type QuotationFilter struct {
	Status          QuotationStatus
	ServiceType     ServiceType
	CameraType      CameraType
	AssignedAdminID string
	ContactMethod   ContactMethod
	CustomerName    string
	PhoneNumber     string
	StartDate       *time.Time
	EndDate         *time.Time
	SortBy          string
	SortOrder       string
	Page            int
	PageSize        int
}
