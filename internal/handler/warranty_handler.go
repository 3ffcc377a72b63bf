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

// WarrantyHandler exposes warranty record endpoints.
type WarrantyHandler struct {
	service *service.WarrantyService
	exports *service.ExportService
	metrics *service.MetricsService
}

// NewWarrantyHandler constructs a warranty handler.
func NewWarrantyHandler(svc *service.WarrantyService, exports *service.ExportService, metrics *service.MetricsService) *WarrantyHandler {
	return &WarrantyHandler{service: svc, exports: exports, metrics: metrics}
}

func warrantyFilterFromQuery(q dto.WarrantyQuery) models.WarrantyFilter {
	filter := models.WarrantyFilter{
		Status:       q.Status,
		ProductID:    q.ProductID,
		CustomerName: q.CustomerName,
		PhoneNumber:  q.PhoneNumber,
		SortBy:       q.SortBy,
		SortOrder:    q.SortOrder,
		Page:         q.Page,
		PageSize:     q.PageSize,
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

// List godoc
// @Summary List warranty records
// @Tags Warranties
// @Produce json
// @Param status query string false "Filter by status"
// @Param product_id query string false "Filter by product"
// @Param customer_name query string false "Partial customer name match"
// @Param phone_number query string false "Exact phone number match"
// @Param start_date query string false "Purchase date from (YYYY-MM-DD)"
// @Param end_date query string false "Purchase date to (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /warranties [get]
func (h *WarrantyHandler) List(c *gin.Context) {
	var q dto.WarrantyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	records, pagination, err := h.service.List(c.Request.Context(), warrantyFilterFromQuery(q))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}

// ListByStatus godoc
// @Summary List warranty records in a given status
// @Tags Warranties
// @Produce json
// @Param status path string true "Warranty status"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /warranties/status/{status} [get]
func (h *WarrantyHandler) ListByStatus(c *gin.Context) {
	status := models.WarrantyStatus(c.Param("status"))
	if !models.ValidWarrantyStatus(status) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid warranty status"))
		return
	}

	var q dto.WarrantyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	filter := warrantyFilterFromQuery(q)
	filter.Status = status

	records, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}

// Get godoc
// @Summary Get a warranty record
// @Tags Warranties
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /warranties/{id} [get]
func (h *WarrantyHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// GetByWarrantyID godoc
// @Summary Look up a warranty by its printed identifier
// @Tags Public
// @Produce json
// @Param warrantyId path string true "Warranty business ID (WR-...)"
// @Success 200 {object} response.Envelope
// @Router /public/warranties/id/{warrantyId} [get]
func (h *WarrantyHandler) GetByWarrantyID(c *gin.Context) {
	record, err := h.service.GetByWarrantyID(c.Request.Context(), c.Param("warrantyId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// GetByPhoneNumber godoc
// @Summary List warranties registered under a phone number
// @Tags Public
// @Produce json
// @Param phoneNumber path string true "Phone number"
// @Success 200 {object} response.Envelope
// @Router /public/warranties/phone/{phoneNumber} [get]
func (h *WarrantyHandler) GetByPhoneNumber(c *gin.Context) {
	records, err := h.service.FindByPhoneNumber(c.Request.Context(), c.Param("phoneNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Eligibility godoc
// @Summary Check claim eligibility for a phone number
// @Tags Public
// @Produce json
// @Param phoneNumber path string true "Phone number"
// @Success 200 {object} response.Envelope
// @Router /public/eligibility/{phoneNumber} [get]
func (h *WarrantyHandler) Eligibility(c *gin.Context) {
	result, err := h.service.Eligibility(c.Request.Context(), c.Param("phoneNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Create godoc
// @Summary Register a warranty record
// @Tags Warranties
// @Accept json
// @Produce json
// @Param payload body dto.CreateWarrantyRequest true "Warranty payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /warranties [post]
func (h *WarrantyHandler) Create(c *gin.Context) {
	var req dto.CreateWarrantyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Update a warranty record
// @Tags Warranties
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param payload body dto.UpdateWarrantyRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /warranties/{id} [put]
func (h *WarrantyHandler) Update(c *gin.Context) {
	var req dto.UpdateWarrantyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Delete a warranty record
// @Tags Warranties
// @Produce json
// @Param id path string true "Record ID"
// @Success 204
// @Security BearerAuth
// @Router /warranties/{id} [delete]
func (h *WarrantyHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats godoc
// @Summary Warranty dashboard statistics
// @Tags Warranties
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /warranties/stats [get]
func (h *WarrantyHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// SweepExpired godoc
// @Summary Flip lapsed Active warranties to Expired
// @Tags Warranties
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /warranties/sweep-expired [post]
func (h *WarrantyHandler) SweepExpired(c *gin.Context) {
	result, err := h.service.SweepExpired(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordSweep(result.ModifiedCount)
	response.JSON(c, http.StatusOK, result, nil)
}

// Export godoc
// @Summary Export warranty records as CSV or PDF
// @Tags Warranties
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Security BearerAuth
// @Router /warranties/export [get]
func (h *WarrantyHandler) Export(c *gin.Context) {
	var q dto.WarrantyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	file, err := h.exports.Warranties(c.Request.Context(), warrantyFilterFromQuery(q), service.ExportFormat(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
