package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/faisalcam/cctv-shop-api/internal/dto"
	"github.com/faisalcam/cctv-shop-api/internal/models"
	"github.com/faisalcam/cctv-shop-api/internal/service"
	appErrors "github.com/faisalcam/cctv-shop-api/pkg/errors"
	"github.com/faisalcam/cctv-shop-api/pkg/response"
)

// ClaimHandler exposes warranty claim endpoints.
type ClaimHandler struct {
	service *service.ClaimService
	exports *service.ExportService
	metrics *service.MetricsService
}

// NewClaimHandler constructs a claim handler.
func NewClaimHandler(svc *service.ClaimService, exports *service.ExportService, metrics *service.MetricsService) *ClaimHandler {
	return &ClaimHandler{service: svc, exports: exports, metrics: metrics}
}

func claimFilterFromQuery(q dto.ClaimQuery) models.ClaimFilter {
	filter := models.ClaimFilter{
		Status:           q.Status,
		WarrantyRecordID: q.WarrantyRecordID,
		CustomerName:     q.CustomerName,
		PhoneNumber:      q.PhoneNumber,
		SortBy:           q.SortBy,
		SortOrder:        q.SortOrder,
		Page:             q.Page,
		PageSize:         q.PageSize,
	}
	if t, err := time.Parse("2006-01-02", q.StartDate); err == nil {
		filter.StartDate = &t
	}
	if t, err := time.Parse("2006-01-02", q.EndDate); err == nil {
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	return filter
}

// Create godoc
// @Summary File a warranty claim
// @Description The phone number must match a registered warranty. Without an
// @Description explicit warranty_record_id the most recent Active warranty is used.
// @Tags Claims
// @Accept json
// @Produce json
// @Param payload body dto.CreateClaimRequest true "Claim payload"
// @Success 201 {object} response.Envelope
// @Router /public/claims [post]
func (h *ClaimHandler) Create(c *gin.Context) {
	var req dto.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claim, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordClaimCreated()
	response.Created(c, claim)
}

// List godoc
// @Summary List claims
// @Tags Claims
// @Produce json
// @Param status query string false "Filter by status"
// @Param warranty_record_id query string false "Filter by warranty record"
// @Param customer_name query string false "Partial customer name match"
// @Param phone_number query string false "Exact phone number match"
// @Param start_date query string false "Created from (YYYY-MM-DD)"
// @Param end_date query string false "Created to (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /claims [get]
func (h *ClaimHandler) List(c *gin.Context) {
	var q dto.ClaimQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	claims, pagination, err := h.service.List(c.Request.Context(), claimFilterFromQuery(q))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claims, pagination)
}

// ListByStatus godoc
// @Summary List claims in a given status
// @Tags Claims
// @Produce json
// @Param status path string true "Claim status"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /claims/status/{status} [get]
func (h *ClaimHandler) ListByStatus(c *gin.Context) {
	status := models.ClaimStatus(c.Param("status"))
	if !models.ValidClaimStatus(status) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid claim status"))
		return
	}

	var q dto.ClaimQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	filter := claimFilterFromQuery(q)
	filter.Status = status

	claims, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claims, pagination)
}

// Get godoc
// @Summary Get a claim
// @Tags Claims
// @Produce json
// @Param id path string true "Claim row ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /claims/{id} [get]
func (h *ClaimHandler) Get(c *gin.Context) {
	claim, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// GetByPhoneNumber godoc
// @Summary List claims filed under a phone number
// @Tags Public
// @Produce json
// @Param phoneNumber path string true "Phone number"
// @Success 200 {object} response.Envelope
// @Router /public/claims/phone/{phoneNumber} [get]
func (h *ClaimHandler) GetByPhoneNumber(c *gin.Context) {
	claims, err := h.service.FindByPhoneNumber(c.Request.Context(), c.Param("phoneNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claims, nil)
}

// Update godoc
// @Summary Update a claim's issue description
// @Tags Claims
// @Accept json
// @Produce json
// @Param id path string true "Claim row ID"
// @Param payload body dto.UpdateClaimRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /claims/{id} [put]
func (h *ClaimHandler) Update(c *gin.Context) {
	var req dto.UpdateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claim, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// UpdateStatus godoc
// @Summary Approve, reject, or reopen a claim
// @Tags Claims
// @Accept json
// @Produce json
// @Param id path string true "Claim row ID"
// @Param payload body dto.UpdateClaimStatusRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /claims/{id}/status [patch]
func (h *ClaimHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateClaimStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claim, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// Delete godoc
// @Summary Delete a claim
// @Tags Claims
// @Produce json
// @Param id path string true "Claim row ID"
// @Success 204
// @Security BearerAuth
// @Router /claims/{id} [delete]
func (h *ClaimHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Claim dashboard statistics
// @Tags Claims
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /claims/stats [get]
func (h *ClaimHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Export godoc
// @Summary Export claims as CSV or PDF
// @Tags Claims
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Security BearerAuth
// @Router /claims/export [get]
func (h *ClaimHandler) Export(c *gin.Context) {
	var q dto.ClaimQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	file, err := h.exports.Claims(c.Request.Context(), claimFilterFromQuery(q), service.ExportFormat(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
