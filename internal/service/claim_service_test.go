package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faisalcam/cctv-shop-api/internal/dto"
	"github.com/faisalcam/cctv-shop-api/internal/models"
	appErrors "github.com/faisalcam/cctv-shop-api/pkg/errors"
)

type stubClaimRepo struct {
	claims map[string]*models.WarrantyClaim
}

func newStubClaimRepo() *stubClaimRepo {
	return &stubClaimRepo{claims: make(map[string]*models.WarrantyClaim)}
}

func (r *stubClaimRepo) List(_ context.Context, _ models.ClaimFilter) ([]models.WarrantyClaim, int, error) {
	var out []models.WarrantyClaim
	for _, c := range r.claims {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (r *stubClaimRepo) FindByID(_ context.Context, id string) (*models.WarrantyClaim, error) {
	c, ok := r.claims[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *c
	return &clone, nil
}

func (r *stubClaimRepo) FindByClaimID(_ context.Context, claimID string) (*models.WarrantyClaim, error) {
	for _, c := range r.claims {
		if c.ClaimID == claimID {
			clone := *c
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubClaimRepo) FindByPhoneNumber(_ context.Context, phone string) ([]models.WarrantyClaim, error) {
	var out []models.WarrantyClaim
	for _, c := range r.claims {
		if c.PhoneNumber == phone {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClaimRepo) Create(_ context.Context, c *models.WarrantyClaim) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	clone := *c
	r.claims[c.ID] = &clone
	return nil
}

func (r *stubClaimRepo) Update(_ context.Context, c *models.WarrantyClaim) error {
	if _, ok := r.claims[c.ID]; !ok {
		return sql.ErrNoRows
	}
	clone := *c
	r.claims[c.ID] = &clone
	return nil
}

func (r *stubClaimRepo) Delete(_ context.Context, id string) error {
	delete(r.claims, id)
	return nil
}

func (r *stubClaimRepo) Stats(_ context.Context) (*models.ClaimStats, error) {
	stats := &models.ClaimStats{}
	for _, c := range r.claims {
		stats.Total++
		switch c.ClaimStatus {
		case models.ClaimStatusPending:
			stats.Pending++
		case models.ClaimStatusApproved:
			stats.Approved++
		case models.ClaimStatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

type recordingNotifier struct {
	created  []string
	resolved []string
}

func (n *recordingNotifier) ClaimCreated(c *models.WarrantyClaim)  { n.created = append(n.created, c.ID) }
func (n *recordingNotifier) ClaimResolved(c *models.WarrantyClaim) { n.resolved = append(n.resolved, c.ID) }

func seedRecord(t *testing.T, repo *stubWarrantyRepo, id, phone string, status models.WarrantyStatus, purchase time.Time) *models.WarrantyRecord {
	t.Helper()
	record := &models.WarrantyRecord{
		ID:                 id,
		WarrantyID:         "WR-seed-" + id,
		CustomerName:       "Budi",
		PhoneNumber:        phone,
		CustomerAddress:    "Jl. Example 1",
		ProductID:          "11111111-1111-1111-1111-111111111111",
		QuantityPurchased:  1,
		PurchaseDate:       purchase,
		WarrantyValidUntil: purchase.AddDate(1, 0, 0),
		WarrantyStatus:     status,
	}
	repo.records[id] = record
	return record
}

func newClaimService(claims *stubClaimRepo, warranties *stubWarrantyRepo, notifier claimNotifier) *ClaimService {
	products := newStubProductReader("11111111-1111-1111-1111-111111111111")
	svc := NewClaimService(claims, warranties, products, &sequenceIDs{ids: []string{"WC-00000001-001", "WC-00000001-002"}}, notifier, nil, 0, nil, nil)
	svc.now = fixedNow(testNow)
	return svc
}

func TestClaimCreateNoRecordsForPhone(t *testing.T) {
	svc := newClaimService(newStubClaimRepo(), newStubWarrantyRepo(), nil)

	_, err := svc.Create(context.Background(), dto.CreateClaimRequest{
		PhoneNumber:      "+620000000000",
		IssueDescription: "camera offline",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClaimCreateAutoSelectsLatestActive(t *testing.T) {
	warranties := newStubWarrantyRepo()
	// The newer purchase is Expired; auto-selection must skip it and pick
	// the older Active one.
	seedRecord(t, warranties, "w-newer", "+628111111111", models.WarrantyStatusExpired, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	seedRecord(t, warranties, "w-older", "+628111111111", models.WarrantyStatusActive, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))

	notifier := &recordingNotifier{}
	svc := newClaimService(newStubClaimRepo(), warranties, notifier)

	claim, err := svc.Create(context.Background(), dto.CreateClaimRequest{
		PhoneNumber:      "+628111111111",
		IssueDescription: "camera offline",
	})
	require.NoError(t, err)
	assert.Equal(t, "w-older", claim.WarrantyRecordID)
	assert.Equal(t, models.ClaimStatusPending, claim.ClaimStatus)
	assert.Equal(t, "Budi", claim.CustomerName)
	assert.Equal(t, "+628111111111", claim.PhoneNumber)
	assert.Nil(t, claim.ResolvedAt)
	assert.Equal(t, []string{claim.ID}, notifier.created)
}

func TestClaimCreateAllInactive(t *testing.T) {
	warranties := newStubWarrantyRepo()
	seedRecord(t, warranties, "w1", "+628111111111", models.WarrantyStatusExpired, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))
	seedRecord(t, warranties, "w2", "+628111111111", models.WarrantyStatusVoided, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	svc := newClaimService(newStubClaimRepo(), warranties, nil)

	_, err := svc.Create(context.Background(), dto.CreateClaimRequest{
		PhoneNumber:      "+628111111111",
		IssueDescription: "camera offline",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoActiveWarranty.Code, appErrors.FromError(err).Code)
}

func TestClaimCreateExplicitRecordMustMatchPhone(t *testing.T) {
	warranties := newStubWarrantyRepo()
	seedRecord(t, warranties, "w-mine", "+628111111111", models.WarrantyStatusActive, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	seedRecord(t, warranties, "w-other", "+628999999999", models.WarrantyStatusActive, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	svc := newClaimService(newStubClaimRepo(), warranties, nil)

	// Referencing another customer's record is rejected even though the
	// record exists.
	_, err := svc.Create(context.Background(), dto.CreateClaimRequest{
		PhoneNumber:      "+628111111111",
		WarrantyRecordID: "w-other",
		IssueDescription: "camera offline",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClaimCreateExplicitRecordMayBeInactive(t *testing.T) {
	warranties := newStubWarrantyRepo()
	seedRecord(t, warranties, "w-expired", "+628111111111", models.WarrantyStatusExpired, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	svc := newClaimService(newStubClaimRepo(), warranties, nil)

	claim, err := svc.Create(context.Background(), dto.CreateClaimRequest{
		PhoneNumber:      "+628111111111",
		WarrantyRecordID: "w-expired",
		IssueDescription: "camera offline",
	})
	require.NoError(t, err)
	assert.Equal(t, "w-expired", claim.WarrantyRecordID)
}

func TestClaimUpdateStatusStampsResolvedAtOnce(t *testing.T) {
	warranties := newStubWarrantyRepo()
	seedRecord(t, warranties, "w1", "+628111111111", models.WarrantyStatusActive, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	claims := newStubClaimRepo()
	notifier := &recordingNotifier{}
	svc := newClaimService(claims, warranties, notifier)

	claim, err := svc.Create(context.Background(), dto.CreateClaimRequest{
		PhoneNumber:      "+628111111111",
		IssueDescription: "camera offline",
	})
	require.NoError(t, err)
	require.Nil(t, claim.ResolvedAt)

	updated, err := svc.UpdateStatus(context.Background(), claim.ID, dto.UpdateClaimStatusRequest{Status: models.ClaimStatusApproved})
	require.NoError(t, err)
	require.NotNil(t, updated.ResolvedAt)
	firstResolved := *updated.ResolvedAt
	assert.Equal(t, []string{claim.ID}, notifier.resolved)

	// Flipping the decision later keeps the original resolution time and
	// does not notify again.
	svc.now = fixedNow(testNow.Add(48 * time.Hour))
	updated, err = svc.UpdateStatus(context.Background(), claim.ID, dto.UpdateClaimStatusRequest{Status: models.ClaimStatusRejected})
	require.NoError(t, err)
	require.NotNil(t, updated.ResolvedAt)
	assert.True(t, updated.ResolvedAt.Equal(firstResolved))
	assert.Len(t, notifier.resolved, 1)
}

func TestClaimUpdateStatusBackToPendingKeepsResolvedAt(t *testing.T) {
	warranties := newStubWarrantyRepo()
	seedRecord(t, warranties, "w1", "+628111111111", models.WarrantyStatusActive, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	svc := newClaimService(newStubClaimRepo(), warranties, nil)

	claim, err := svc.Create(context.Background(), dto.CreateClaimRequest{
		PhoneNumber:      "+628111111111",
		IssueDescription: "camera offline",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), claim.ID, dto.UpdateClaimStatusRequest{Status: models.ClaimStatusApproved})
	require.NoError(t, err)
	require.NotNil(t, updated.ResolvedAt)

	updated, err = svc.UpdateStatus(context.Background(), claim.ID, dto.UpdateClaimStatusRequest{Status: models.ClaimStatusPending})
	require.NoError(t, err)
	assert.NotNil(t, updated.ResolvedAt)
}

func TestClaimUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := newClaimService(newStubClaimRepo(), newStubWarrantyRepo(), nil)

	_, err := svc.UpdateStatus(context.Background(), "c1", dto.UpdateClaimStatusRequest{Status: "Resolved"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestClaimSnapshotsSurviveRecordDeletion(t *testing.T) {
	warranties := newStubWarrantyRepo()
	seedRecord(t, warranties, "w1", "+628111111111", models.WarrantyStatusActive, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	svc := newClaimService(newStubClaimRepo(), warranties, nil)

	claim, err := svc.Create(context.Background(), dto.CreateClaimRequest{
		PhoneNumber:      "+628111111111",
		IssueDescription: "camera offline",
	})
	require.NoError(t, err)

	require.NoError(t, warranties.Delete(context.Background(), "w1"))

	reloaded, err := svc.Get(context.Background(), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi", reloaded.CustomerName)
	assert.Equal(t, "+628111111111", reloaded.PhoneNumber)
	assert.Nil(t, reloaded.WarrantyRecord)
}
