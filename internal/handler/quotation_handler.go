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

// QuotationHandler exposes quote request endpoints.
type QuotationHandler struct {
	service *service.QuotationService
}

// NewQuotationHandler constructs a quotation handler.
func NewQuotationHandler(svc *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{service: svc}
}

// Create godoc
// @Summary Request a quotation
// @Description Multipart form with up to three site photos under the "images" field.
// @Tags Public
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /public/quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	var req dto.CreateQuotationRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	var photos []service.QuotationPhoto
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["images"] {
			f, err := fh.Open()
			if err != nil {
				response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable image upload"))
				return
			}
			defer f.Close()
			photos = append(photos, service.QuotationPhoto{Filename: fh.Filename, Reader: f})
		}
	}

	quotation, err := h.service.Create(c.Request.Context(), req, photos)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, quotation)
}

// List godoc
// @Summary List quotations
// @Tags Quotations
// @Produce json
// @Param status query string false "Filter by status"
// @Param service_type query string false "Filter by service type"
// @Param camera_type query string false "Filter by camera type"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	var q dto.QuotationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	filter := models.QuotationFilter{
		Status:          q.Status,
		ServiceType:     q.ServiceType,
		CameraType:      q.CameraType,
		AssignedAdminID: q.AssignedAdminID,
		ContactMethod:   q.ContactMethod,
		CustomerName:    q.CustomerName,
		PhoneNumber:     q.PhoneNumber,
		SortBy:          q.SortBy,
		SortOrder:       q.SortOrder,
		Page:            q.Page,
		PageSize:        q.PageSize,
	}
	if t, err := time.Parse("2006-01-02", q.StartDate); err == nil {
		filter.StartDate = &t
	}
	if t, err := time.Parse("2006-01-02", q.EndDate); err == nil {
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	quotations, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quotations, pagination)
}

// Get godoc
// @Summary Get a quotation
// @Tags Quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /quotations/{id} [get]
func (h *QuotationHandler) Get(c *gin.Context) {
	quotation, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quotation, nil)
}

// Update godoc
// @Summary Triage a quotation
// @Tags Quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param payload body dto.UpdateQuotationRequest true "Triage payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	var req dto.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	quotation, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quotation, nil)
}

// Delete godoc
// @Summary Delete a quotation
// @Tags Quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 204
// @Security BearerAuth
// @Router /quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
