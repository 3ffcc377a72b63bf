package service

import (
	"time"

	"github.com/faisalcam/cctv-shop-api/internal/models"
)

// DeriveWarrantyStatus computes the date-driven status of a record: Expired
// once the validity date has passed, Active otherwise. Voided is never
// derived; it only enters through an explicit admin override.
func DeriveWarrantyStatus(validUntil, now time.Time) models.WarrantyStatus {
	if validUntil.Before(now) {
		return models.WarrantyStatusExpired
	}
	return models.WarrantyStatusActive
}

// EffectiveWarrantyStatus resolves the status to store: an explicit override
// always wins over the date-derived default.
func EffectiveWarrantyStatus(override *models.WarrantyStatus, validUntil, now time.Time) models.WarrantyStatus {
	if override != nil && *override != "" {
		return *override
	}
	return DeriveWarrantyStatus(validUntil, now)
}

// Claimable reports whether a record can back a new claim.
func Claimable(record *models.WarrantyRecord) bool {
	return record.WarrantyStatus == models.WarrantyStatusActive
}
