package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faisalcam/cctv-shop-api/internal/dto"
)

func TestWarrantyFilterFromQueryParsesDates(t *testing.T) {
	filter := warrantyFilterFromQuery(dto.WarrantyQuery{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})

	require.NotNil(t, filter.StartDate)
	require.NotNil(t, filter.EndDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *filter.StartDate)
	// End of the requested day, so records created that day still match.
	assert.Equal(t, time.Date(2026, 3, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), *filter.EndDate)
}

func TestWarrantyFilterFromQueryIgnoresMalformedDates(t *testing.T) {
	filter := warrantyFilterFromQuery(dto.WarrantyQuery{
		StartDate: "03/01/2026",
		EndDate:   "notadate",
	})

	assert.Nil(t, filter.StartDate)
	assert.Nil(t, filter.EndDate)
}

func TestWarrantyListByStatusRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWarrantyHandler(nil, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/warranties/status/Broken", nil)
	c.Params = gin.Params{{Key: "status", Value: "Broken"}}

	handler.ListByStatus(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWarrantyCreateRejectsMalformedPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWarrantyHandler(nil, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/warranties", nil)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
