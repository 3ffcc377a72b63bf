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

const claimStatsCacheKey = "stats:claims"

type claimRepository interface {
	List(ctx context.Context, filter models.ClaimFilter) ([]models.WarrantyClaim, int, error)
	FindByID(ctx context.Context, id string) (*models.WarrantyClaim, error)
	FindByClaimID(ctx context.Context, claimID string) (*models.WarrantyClaim, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) ([]models.WarrantyClaim, error)
	Create(ctx context.Context, claim *models.WarrantyClaim) error
	Update(ctx context.Context, claim *models.WarrantyClaim) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.ClaimStats, error)
}

type claimNotifier interface {
	ClaimCreated(claim *models.WarrantyClaim)
	ClaimResolved(claim *models.WarrantyClaim)
}

// ClaimService orchestrates the claim lifecycle, including phone-number
// based authorization and warranty auto-selection.
type ClaimService struct {
	repo       claimRepository
	warranties warrantyRepository
	products   productReader
	ids        idGenerator
	notifier   claimNotifier
	cache      statsCache
	cacheTTL   time.Duration
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewClaimService creates a new claim service instance. Notifier and cache
// may be nil.
func NewClaimService(repo claimRepository, warranties warrantyRepository, products productReader, ids idGenerator, notifier claimNotifier, cache statsCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *ClaimService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClaimService{
		repo:       repo,
		warranties: warranties,
		products:   products,
		ids:        ids,
		notifier:   notifier,
		cache:      cache,
		cacheTTL:   cacheTTL,
		validator:  validate,
		logger:     logger,
		now:        time.Now,
	}
}

// Create files a new claim. The phone number acts as the customer's
// credential: the claim may only reference a warranty registered under it.
// Without an explicit record the most recent Active warranty is selected.
func (s *ClaimService) Create(ctx context.Context, req dto.CreateClaimRequest) (*models.WarrantyClaim, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid claim payload")
	}

	records, err := s.warranties.FindByPhoneNumber(ctx, req.PhoneNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load warranties by phone")
	}
	if len(records) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no warranty records found for this phone number")
	}

	var selected *models.WarrantyRecord
	if req.WarrantyRecordID != "" {
		for i := range records {
			if records[i].ID == req.WarrantyRecordID {
				selected = &records[i]
				break
			}
		}
		if selected == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selected warranty record not found for this phone number")
		}
	} else {
		// Records arrive most recent purchase first, so the first Active
		// one is the auto-selection winner.
		for i := range records {
			if Claimable(&records[i]) {
				selected = &records[i]
				break
			}
		}
		if selected == nil {
			return nil, appErrors.Clone(appErrors.ErrNoActiveWarranty, "")
		}
	}

	claim := &models.WarrantyClaim{
		WarrantyRecordID: selected.ID,
		CustomerName:     selected.CustomerName,
		PhoneNumber:      selected.PhoneNumber,
		IssueDescription: req.IssueDescription,
		ClaimStatus:      models.ClaimStatusPending,
	}

	for attempt := 0; ; attempt++ {
		claim.ClaimID = s.ids.Generate(idgen.PrefixClaim)
		err = s.repo.Create(ctx, claim)
		if err == nil {
			break
		}
		if repository.IsUniqueViolation(err) && attempt < maxIDAttempts-1 {
			s.logger.Warn("claim id collision, retrying", zap.String("claim_id", claim.ClaimID))
			continue
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create claim")
	}

	s.invalidateStats(ctx)
	s.attachRecord(ctx, claim)
	if s.notifier != nil {
		s.notifier.ClaimCreated(claim)
	}
	return claim, nil
}

// List returns paginated claims with their warranty records attached.
func (s *ClaimService) List(ctx context.Context, filter models.ClaimFilter) ([]models.WarrantyClaim, *models.Pagination, error) {
	claims, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list claims")
	}
	s.attachRecords(ctx, claims)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return claims, pagination, nil
}

// Get returns a claim by row identifier.
func (s *ClaimService) Get(ctx context.Context, id string) (*models.WarrantyClaim, error) {
	claim, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "claim not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load claim")
	}
	s.attachRecord(ctx, claim)
	return claim, nil
}

// GetByClaimID returns a claim by its business identifier (WC-...).
func (s *ClaimService) GetByClaimID(ctx context.Context, claimID string) (*models.WarrantyClaim, error) {
	claim, err := s.repo.FindByClaimID(ctx, claimID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "claim not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load claim")
	}
	s.attachRecord(ctx, claim)
	return claim, nil
}

// FindByPhoneNumber returns the claim history for a phone number.
func (s *ClaimService) FindByPhoneNumber(ctx context.Context, phoneNumber string) ([]models.WarrantyClaim, error) {
	claims, err := s.repo.FindByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load claims by phone")
	}
	s.attachRecords(ctx, claims)
	return claims, nil
}

// Update modifies a claim's issue description.
func (s *ClaimService) Update(ctx context.Context, id string, req dto.UpdateClaimRequest) (*models.WarrantyClaim, error) {
	claim, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "claim not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load claim")
	}

	if req.IssueDescription != nil {
		claim.IssueDescription = *req.IssueDescription
	}

	if err := s.repo.Update(ctx, claim); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update claim")
	}
	s.attachRecord(ctx, claim)
	return claim, nil
}

// UpdateStatus records the admin decision. ResolvedAt is stamped on the
// first transition out of Pending and never overwritten afterwards, so the
// original resolution time survives later status flips.
func (s *ClaimService) UpdateStatus(ctx context.Context, id string, req dto.UpdateClaimStatusRequest) (*models.WarrantyClaim, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid claim status payload")
	}
	if !models.ValidClaimStatus(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid claim status")
	}

	claim, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "claim not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load claim")
	}

	wasResolved := claim.ResolvedAt != nil
	claim.ClaimStatus = req.Status
	if (req.Status == models.ClaimStatusApproved || req.Status == models.ClaimStatusRejected) && claim.ResolvedAt == nil {
		ts := s.now().UTC()
		claim.ResolvedAt = &ts
	}

	if err := s.repo.Update(ctx, claim); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update claim status")
	}

	s.invalidateStats(ctx)
	s.attachRecord(ctx, claim)
	if s.notifier != nil && !wasResolved && claim.ResolvedAt != nil {
		s.notifier.ClaimResolved(claim)
	}
	return claim, nil
}

// Delete removes a claim permanently.
func (s *ClaimService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "claim not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load claim")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete claim")
	}
	s.invalidateStats(ctx)
	return nil
}

// Stats returns dashboard aggregates, served from cache when fresh.
func (s *ClaimService) Stats(ctx context.Context) (*models.ClaimStats, error) {
	if s.cache != nil {
		var cached models.ClaimStats
		if err := s.cache.Get(ctx, claimStatsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute claim stats")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, claimStatsCacheKey, stats, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache claim stats", zap.Error(err))
		}
	}
	return stats, nil
}

// attachRecord loads the referenced warranty record, tolerating records
// deleted after the claim was filed.
func (s *ClaimService) attachRecord(ctx context.Context, claim *models.WarrantyClaim) {
	record, err := s.warranties.FindByID(ctx, claim.WarrantyRecordID)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("failed to attach warranty record", zap.String("warranty_record_id", claim.WarrantyRecordID), zap.Error(err))
		}
		return
	}
	if product, err := s.products.FindByID(ctx, record.ProductID); err == nil {
		record.Product = product
	}
	claim.WarrantyRecord = record
}

func (s *ClaimService) attachRecords(ctx context.Context, claims []models.WarrantyClaim) {
	for i := range claims {
		s.attachRecord(ctx, &claims[i])
	}
}

func (s *ClaimService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, claimStatsCacheKey+"*"); err != nil {
		s.logger.Warn("failed to invalidate claim stats cache", zap.Error(err))
	}
}
