package models

import "time"

// CameraType enumerates the camera families the shop sells.
type CameraType string

const (
	CameraTypeIP     CameraType = "IP"
	CameraTypeAnalog CameraType = "Analog"
	CameraTypeWiFi   CameraType = "WiFi"
)

// Product is a catalog item referenced by warranty records. Catalog
// management itself lives outside this service; products are read here for
// reference checks and display joins only.
type Product struct {
	ID             string     `db:"id" json:"id"`
	SKU            string     `db:"sku" json:"sku"`
	ProductName    string     `db:"product_name" json:"product_name"`
	Brand          string     `db:"brand" json:"brand"`
	CameraType     CameraType `db:"camera_type" json:"camera_type"`
	Resolution     string     `db:"resolution" json:"resolution"`
	LensType       *string    `db:"lens_type" json:"lens_type,omitempty"`
	NightVision    bool       `db:"night_vision" json:"night_vision"`
	StorageSupport *string    `db:"storage_support" json:"storage_support,omitempty"`
	WarrantyMonths int        `db:"warranty_months" json:"warranty_months"`
	Price          float64    `db:"price" json:"price"`
	InStock        bool       `db:"in_stock" json:"in_stock"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
