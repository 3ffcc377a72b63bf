package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/faisalcam/cctv-shop-api/internal/dto"
	"github.com/faisalcam/cctv-shop-api/internal/idgen"
	"github.com/faisalcam/cctv-shop-api/internal/models"
	"github.com/faisalcam/cctv-shop-api/internal/repository"
	appErrors "github.com/faisalcam/cctv-shop-api/pkg/errors"
)

// maxIDAttempts bounds the business-ID collision retry loop.
const maxIDAttempts = 10

const warrantyStatsCacheKey = "stats:warranties"

type warrantyRepository interface {
	List(ctx context.Context, filter models.WarrantyFilter) ([]models.WarrantyRecord, int, error)
	FindByID(ctx context.Context, id string) (*models.WarrantyRecord, error)
	FindByWarrantyID(ctx context.Context, warrantyID string) (*models.WarrantyRecord, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) ([]models.WarrantyRecord, error)
	Create(ctx context.Context, record *models.WarrantyRecord) error
	Update(ctx context.Context, record *models.WarrantyRecord) error
	Delete(ctx context.Context, id string) error
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
	Stats(ctx context.Context) (*models.WarrantyStats, error)
}

type productReader interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type idGenerator interface {
	Generate(prefix string) string
}

type statsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// WarrantyService orchestrates the warranty record lifecycle.
type WarrantyService struct {
	repo      warrantyRepository
	products  productReader
	ids       idGenerator
	cache     statsCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewWarrantyService creates a new warranty service instance. Cache may be
// nil, in which case stats are computed on every request.
func NewWarrantyService(repo warrantyRepository, products productReader, ids idGenerator, cache statsCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *WarrantyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WarrantyService{
		repo:      repo,
		products:  products,
		ids:       ids,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns paginated warranty records with products attached.
func (s *WarrantyService) List(ctx context.Context, filter models.WarrantyFilter) ([]models.WarrantyRecord, *models.Pagination, error) {
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list warranty records")
	}

	if err := s.attachProducts(ctx, records); err != nil {
		return nil, nil, err
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
	return records, pagination, nil
}

// Get returns a warranty record by row identifier.
func (s *WarrantyService) Get(ctx context.Context, id string) (*models.WarrantyRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "warranty record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load warranty record")
	}
	s.attachProduct(ctx, record)
	return record, nil
}

// GetByWarrantyID returns a record by its business identifier (WR-...).
func (s *WarrantyService) GetByWarrantyID(ctx context.Context, warrantyID string) (*models.WarrantyRecord, error) {
	record, err := s.repo.FindByWarrantyID(ctx, warrantyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "warranty record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load warranty record")
	}
	s.attachProduct(ctx, record)
	return record, nil
}

// FindByPhoneNumber returns all records registered under the phone number,
// most recent purchase first.
func (s *WarrantyService) FindByPhoneNumber(ctx context.Context, phoneNumber string) ([]models.WarrantyRecord, error) {
	records, err := s.repo.FindByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load warranties by phone")
	}
	if err := s.attachProducts(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create registers a new warranty record. The generated WR identifier is
// retried on a database collision up to maxIDAttempts times.
func (s *WarrantyService) Create(ctx context.Context, req dto.CreateWarrantyRequest) (*models.WarrantyRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid warranty payload")
	}
	if !req.WarrantyValidUntil.After(req.PurchaseDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "warranty_valid_until must be after purchase_date")
	}
	if req.WarrantyStatus != nil && !models.ValidWarrantyStatus(*req.WarrantyStatus) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid warranty_status")
	}

	exists, err := s.products.Exists(ctx, req.ProductID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check product")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "product not found")
	}

	now := s.now()
	record := &models.WarrantyRecord{
		CustomerName:       req.CustomerName,
		PhoneNumber:        req.PhoneNumber,
		CustomerAddress:    req.CustomerAddress,
		ProductID:          req.ProductID,
		QuantityPurchased:  req.QuantityPurchased,
		PurchaseDate:       req.PurchaseDate,
		WarrantyValidUntil: req.WarrantyValidUntil,
		WarrantyStatus:     EffectiveWarrantyStatus(req.WarrantyStatus, req.WarrantyValidUntil, now),
	}

	for attempt := 0; ; attempt++ {
		record.WarrantyID = s.ids.Generate(idgen.PrefixWarranty)
		err = s.repo.Create(ctx, record)
		if err == nil {
			break
		}
		if repository.IsUniqueViolation(err) && attempt < maxIDAttempts-1 {
			s.logger.Warn("warranty id collision, retrying", zap.String("warranty_id", record.WarrantyID))
			continue
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create warranty record")
	}

	s.invalidateStats(ctx)
	s.attachProduct(ctx, record)
	return record, nil
}

// Update modifies the supplied fields of a record. When the validity date
// changes without an explicit status, the status is re-derived from the new
// date.
func (s *WarrantyService) Update(ctx context.Context, id string, req dto.UpdateWarrantyRequest) (*models.WarrantyRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid warranty payload")
	}
	if req.WarrantyStatus != nil && !models.ValidWarrantyStatus(*req.WarrantyStatus) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid warranty_status")
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "warranty record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load warranty record")
	}

	if req.CustomerName != nil {
		record.CustomerName = *req.CustomerName
	}
	if req.PhoneNumber != nil {
		record.PhoneNumber = *req.PhoneNumber
	}
	if req.CustomerAddress != nil {
		record.CustomerAddress = *req.CustomerAddress
	}
	if req.ProductID != nil {
		exists, err := s.products.Exists(ctx, *req.ProductID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check product")
		}
		if !exists {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "product not found")
		}
		record.ProductID = *req.ProductID
	}
	if req.QuantityPurchased != nil {
		record.QuantityPurchased = *req.QuantityPurchased
	}
	if req.PurchaseDate != nil {
		record.PurchaseDate = *req.PurchaseDate
	}

	dateChanged := false
	if req.WarrantyValidUntil != nil {
		record.WarrantyValidUntil = *req.WarrantyValidUntil
		dateChanged = true
	}
	if !record.WarrantyValidUntil.After(record.PurchaseDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "warranty_valid_until must be after purchase_date")
	}

	if req.WarrantyStatus != nil {
		record.WarrantyStatus = *req.WarrantyStatus
	} else if dateChanged {
		record.WarrantyStatus = DeriveWarrantyStatus(record.WarrantyValidUntil, s.now())
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update warranty record")
	}

	s.invalidateStats(ctx)
	s.attachProduct(ctx, record)
	return record, nil
}

// Delete removes a record. Existing claims keep their snapshots.
func (s *WarrantyService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "warranty record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load warranty record")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete warranty record")
	}
	s.invalidateStats(ctx)
	return nil
}

// SweepExpired flips lapsed Active records to Expired. The sweep is
// idempotent: a second run over the same data reports zero modifications.
func (s *WarrantyService) SweepExpired(ctx context.Context) (*models.SweepResult, error) {
	n, err := s.repo.SweepExpired(ctx, s.now())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sweep expired warranties")
	}
	if n > 0 {
		s.invalidateStats(ctx)
	}
	s.logger.Info("expiry sweep finished", zap.Int64("modified", n))
	return &models.SweepResult{ModifiedCount: n}, nil
}

// Stats returns dashboard aggregates, served from cache when fresh.
func (s *WarrantyService) Stats(ctx context.Context) (*models.WarrantyStats, error) {
	if s.cache != nil {
		var cached models.WarrantyStats
		if err := s.cache.Get(ctx, warrantyStatsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute warranty stats")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, warrantyStatsCacheKey, stats, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache warranty stats", zap.Error(err))
		}
	}
	return stats, nil
}

// Eligibility partitions a phone number's records by status. Zero records is
// a valid outcome, not an error.
func (s *WarrantyService) Eligibility(ctx context.Context, phoneNumber string) (*models.EligibilityResult, error) {
	records, err := s.repo.FindByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load warranties by phone")
	}
	if err := s.attachProducts(ctx, records); err != nil {
		return nil, err
	}

	result := &models.EligibilityResult{
		TotalWarranties: len(records),
		Active:          []models.WarrantyRecord{},
		Expired:         []models.WarrantyRecord{},
		Voided:          []models.WarrantyRecord{},
	}
	for _, record := range records {
		switch record.WarrantyStatus {
		case models.WarrantyStatusActive:
			result.Active = append(result.Active, record)
		case models.WarrantyStatusExpired:
			result.Expired = append(result.Expired, record)
		case models.WarrantyStatusVoided:
			result.Voided = append(result.Voided, record)
		}
	}
	result.Eligible = len(result.Active) > 0
	return result, nil
}

func (s *WarrantyService) attachProduct(ctx context.Context, record *models.WarrantyRecord) {
	product, err := s.products.FindByID(ctx, record.ProductID)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("failed to attach product", zap.String("product_id", record.ProductID), zap.Error(err))
		}
		return
	}
	record.Product = product
}

func (s *WarrantyService) attachProducts(ctx context.Context, records []models.WarrantyRecord) error {
	if len(records) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(records))
	var ids []string
	for _, r := range records {
		if !seen[r.ProductID] {
			seen[r.ProductID] = true
			ids = append(ids, r.ProductID)
		}
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load products")
	}

	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range records {
		records[i].Product = byID[records[i].ProductID]
	}
	return nil
}

func (s *WarrantyService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, warrantyStatsCacheKey+"*"); err != nil {
		s.logger.Warn("failed to invalidate warranty stats cache", zap.Error(err))
	}
}
