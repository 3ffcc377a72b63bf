package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/faisalcam/cctv-shop-api/internal/models"
)

func TestDeriveWarrantyStatus(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, models.WarrantyStatusExpired, DeriveWarrantyStatus(now.Add(-time.Second), now))
	assert.Equal(t, models.WarrantyStatusActive, DeriveWarrantyStatus(now.Add(time.Second), now))
	// Exactly at the boundary the warranty is still honoured.
	assert.Equal(t, models.WarrantyStatusActive, DeriveWarrantyStatus(now, now))
}

func TestEffectiveWarrantyStatusOverrideWins(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)
	past := now.AddDate(-1, 0, 0)

	voided := models.WarrantyStatusVoided
	assert.Equal(t, models.WarrantyStatusVoided, EffectiveWarrantyStatus(&voided, future, now))

	// Admin may force Active on a date-expired record.
	active := models.WarrantyStatusActive
	assert.Equal(t, models.WarrantyStatusActive, EffectiveWarrantyStatus(&active, past, now))

	assert.Equal(t, models.WarrantyStatusActive, EffectiveWarrantyStatus(nil, future, now))
	assert.Equal(t, models.WarrantyStatusExpired, EffectiveWarrantyStatus(nil, past, now))

	empty := models.WarrantyStatus("")
	assert.Equal(t, models.WarrantyStatusExpired, EffectiveWarrantyStatus(&empty, past, now))
}

func TestClaimable(t *testing.T) {
	assert.True(t, Claimable(&models.WarrantyRecord{WarrantyStatus: models.WarrantyStatusActive}))
	assert.False(t, Claimable(&models.WarrantyRecord{WarrantyStatus: models.WarrantyStatusExpired}))
	assert.False(t, Claimable(&models.WarrantyRecord{WarrantyStatus: models.WarrantyStatusVoided}))
}
