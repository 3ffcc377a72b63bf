package service

import (
	"context"
	"database/sql"
	"io"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/faisalcam/cctv-shop-api/internal/dto"
	"github.com/faisalcam/cctv-shop-api/internal/models"
	appErrors "github.com/faisalcam/cctv-shop-api/pkg/errors"
	"github.com/faisalcam/cctv-shop-api/pkg/imagestore"
)

// maxQuotationPhotos caps site photo uploads per quotation.
const maxQuotationPhotos = 3

type quotationRepository interface {
	List(ctx context.Context, filter models.QuotationFilter) ([]models.Quotation, int, error)
	FindByID(ctx context.Context, id string) (*models.Quotation, error)
	Create(ctx context.Context, quotation *models.Quotation) error
	Update(ctx context.Context, quotation *models.Quotation) error
	Delete(ctx context.Context, id string) error
}

type imageStorer interface {
	Enabled() bool
	Store(ctx context.Context, filename string, r io.Reader) (*imagestore.UploadResult, error)
	Remove(ctx context.Context, url string) error
}

// QuotationPhoto is one uploaded site photo, already opened by the handler.
type QuotationPhoto struct {
	Filename string
	Reader   io.Reader
}

// QuotationService orchestrates the quote request workflow.
type QuotationService struct {
	repo      quotationRepository
	images    imageStorer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQuotationService creates a new quotation service instance. Images may
// be nil when no image store is configured.
func NewQuotationService(repo quotationRepository, images imageStorer, validate *validator.Validate, logger *zap.Logger) *QuotationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotationService{repo: repo, images: images, validator: validate, logger: logger}
}

// Create files a public quote request with up to three site photos.
func (s *QuotationService) Create(ctx context.Context, req dto.CreateQuotationRequest, photos []QuotationPhoto) (*models.Quotation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid quotation payload")
	}
	if !validServiceType(req.ServiceType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid service_type")
	}
	if !validCameraType(req.CameraType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid camera_type")
	}
	if req.PreferredContactMethod != models.ContactMethodCall && req.PreferredContactMethod != models.ContactMethodWhatsApp {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid preferred_contact_method")
	}
	if len(photos) > maxQuotationPhotos {
		return nil, appErrors.Clone(appErrors.ErrValidation, "you can upload a maximum of 3 images")
	}

	uploaded, err := s.storePhotos(ctx, photos)
	if err != nil {
		return nil, err
	}

	quotation := &models.Quotation{
		CustomerName:           req.CustomerName,
		PhoneNumber:            req.PhoneNumber,
		ServiceType:            req.ServiceType,
		CameraType:             req.CameraType,
		Quantity:               req.Quantity,
		InstallationLocation:   req.InstallationLocation,
		Images:                 uploaded,
		PreferredContactMethod: req.PreferredContactMethod,
		QuotationStatus:        models.QuotationStatusPending,
	}
	if req.Email != "" {
		quotation.Email = &req.Email
	}
	if req.ProblemDescription != "" {
		quotation.ProblemDescription = &req.ProblemDescription
	}

	if err := s.repo.Create(ctx, quotation); err != nil {
		s.removePhotos(ctx, uploaded)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create quotation")
	}
	return quotation, nil
}

// List returns paginated quotations.
func (s *QuotationService) List(ctx context.Context, filter models.QuotationFilter) ([]models.Quotation, *models.Pagination, error) {
	quotations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list quotations")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return quotations, pagination, nil
}

// Get returns a quotation by identifier.
func (s *QuotationService) Get(ctx context.Context, id string) (*models.Quotation, error) {
	quotation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quotation not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quotation")
	}
	return quotation, nil
}

// Update applies admin triage changes to a quotation.
func (s *QuotationService) Update(ctx context.Context, id string, req dto.UpdateQuotationRequest) (*models.Quotation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid quotation payload")
	}
	if req.Status != nil && !models.ValidQuotationStatus(*req.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid quotation status")
	}

	quotation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quotation not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quotation")
	}

	if req.Status != nil {
		quotation.QuotationStatus = *req.Status
	}
	if req.AssignedAdminID != nil {
		quotation.AssignedAdminID = req.AssignedAdminID
	}
	if req.AdminNotes != nil {
		quotation.AdminNotes = req.AdminNotes
	}

	if err := s.repo.Update(ctx, quotation); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update quotation")
	}
	return quotation, nil
}

// Delete removes a quotation and its stored photos.
func (s *QuotationService) Delete(ctx context.Context, id string) error {
	quotation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "quotation not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quotation")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete quotation")
	}

	s.removePhotos(ctx, quotation.Images)
	return nil
}

func (s *QuotationService) storePhotos(ctx context.Context, photos []QuotationPhoto) ([]string, error) {
	if len(photos) == 0 {
		return []string{}, nil
	}
	if s.images == nil || !s.images.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "image uploads are not enabled")
	}

	var urls []string
	for _, photo := range photos {
		result, err := s.images.Store(ctx, photo.Filename, photo.Reader)
		if err != nil {
			s.removePhotos(ctx, urls)
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to upload image")
		}
		urls = append(urls, result.URL)
	}
	return urls, nil
}

// removePhotos is best effort; a leaked remote image is logged, not fatal.
func (s *QuotationService) removePhotos(ctx context.Context, urls []string) {
	if s.images == nil || !s.images.Enabled() {
		return
	}
	for _, url := range urls {
		if err := s.images.Remove(ctx, url); err != nil {
			s.logger.Warn("failed to remove stored image", zap.String("url", url), zap.Error(err))
		}
	}
}

func validServiceType(t models.ServiceType) bool {
	switch t {
	case models.ServiceTypeSelling, models.ServiceTypeInstallation, models.ServiceTypeTroubleshooting:
		return true
	}
	return false
}

func validCameraType(t models.CameraType) bool {
	switch t {
	case models.CameraTypeIP, models.CameraTypeAnalog, models.CameraTypeWiFi:
		return true
	}
	return false
}
