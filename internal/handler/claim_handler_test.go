package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/faisalcam/cctv-shop-api/internal/dto"
)

func TestClaimCreateRejectsMalformedPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewClaimHandler(nil, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/public/claims", strings.NewReader("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClaimListByStatusRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewClaimHandler(nil, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/claims/status/Resolved", nil)
	c.Params = gin.Params{{Key: "status", Value: "Resolved"}}

	handler.ListByStatus(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClaimFilterFromQueryCarriesIdentityFilters(t *testing.T) {
	filter := claimFilterFromQuery(dto.ClaimQuery{
		WarrantyRecordID: "rec-1",
		CustomerName:     "Ahmed",
		PhoneNumber:      "0300",
		Page:             2,
		PageSize:         50,
	})

	assert.Equal(t, "rec-1", filter.WarrantyRecordID)
	assert.Equal(t, "Ahmed", filter.CustomerName)
	assert.Equal(t, "0300", filter.PhoneNumber)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, 50, filter.PageSize)
}
