package service

import (
	"context"
	"database/sql"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faisalcam/cctv-shop-api/internal/dto"
	"github.com/faisalcam/cctv-shop-api/internal/models"
	appErrors "github.com/faisalcam/cctv-shop-api/pkg/errors"
)

type stubWarrantyRepo struct {
	records      map[string]*models.WarrantyRecord
	failCreates  int32
	sweepCounter int
}

func newStubWarrantyRepo() *stubWarrantyRepo {
	return &stubWarrantyRepo{records: make(map[string]*models.WarrantyRecord)}
}

func (r *stubWarrantyRepo) List(_ context.Context, filter models.WarrantyFilter) ([]models.WarrantyRecord, int, error) {
	var out []models.WarrantyRecord
	for _, rec := range r.records {
		if filter.Status != "" && rec.WarrantyStatus != filter.Status {
			continue
		}
		out = append(out, *rec)
	}
	return out, len(out), nil
}

func (r *stubWarrantyRepo) FindByID(_ context.Context, id string) (*models.WarrantyRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *rec
	return &clone, nil
}

func (r *stubWarrantyRepo) FindByWarrantyID(_ context.Context, warrantyID string) (*models.WarrantyRecord, error) {
	for _, rec := range r.records {
		if rec.WarrantyID == warrantyID {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubWarrantyRepo) FindByPhoneNumber(_ context.Context, phone string) ([]models.WarrantyRecord, error) {
	var out []models.WarrantyRecord
	for _, rec := range r.records {
		if rec.PhoneNumber == phone {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.After(out[j].PurchaseDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *stubWarrantyRepo) Create(_ context.Context, rec *models.WarrantyRecord) error {
	if atomic.LoadInt32(&r.failCreates) > 0 {
		atomic.AddInt32(&r.failCreates, -1)
		return &pq.Error{Code: "23505"}
	}
	for _, existing := range r.records {
		if existing.WarrantyID == rec.WarrantyID {
			return &pq.Error{Code: "23505"}
		}
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	clone := *rec
	r.records[rec.ID] = &clone
	return nil
}

func (r *stubWarrantyRepo) Update(_ context.Context, rec *models.WarrantyRecord) error {
	if _, ok := r.records[rec.ID]; !ok {
		return sql.ErrNoRows
	}
	clone := *rec
	r.records[rec.ID] = &clone
	return nil
}

func (r *stubWarrantyRepo) Delete(_ context.Context, id string) error {
	delete(r.records, id)
	return nil
}

func (r *stubWarrantyRepo) SweepExpired(_ context.Context, now time.Time) (int64, error) {
	r.sweepCounter++
	var n int64
	for _, rec := range r.records {
		if rec.WarrantyStatus == models.WarrantyStatusActive && rec.WarrantyValidUntil.Before(now) {
			rec.WarrantyStatus = models.WarrantyStatusExpired
			n++
		}
	}
	return n, nil
}

func (r *stubWarrantyRepo) Stats(_ context.Context) (*models.WarrantyStats, error) {
	stats := &models.WarrantyStats{}
	for _, rec := range r.records {
		stats.Total++
		switch rec.WarrantyStatus {
		case models.WarrantyStatusActive:
			stats.Active++
		case models.WarrantyStatusExpired:
			stats.Expired++
		case models.WarrantyStatusVoided:
			stats.Voided++
		}
	}
	return stats, nil
}

type stubProductReader struct {
	products map[string]*models.Product
}

func newStubProductReader(ids ...string) *stubProductReader {
	r := &stubProductReader{products: make(map[string]*models.Product)}
	for _, id := range ids {
		r.products[id] = &models.Product{ID: id, ProductName: "Camera " + id}
	}
	return r
}

func (r *stubProductReader) FindByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (r *stubProductReader) FindByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductReader) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.products[id]
	return ok, nil
}

type sequenceIDs struct {
	ids []string
	idx int
}

func (g *sequenceIDs) Generate(prefix string) string {
	if g.idx >= len(g.ids) {
		return prefix + "-overflow"
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newWarrantyService(repo *stubWarrantyRepo, products *stubProductReader, ids idGenerator) *WarrantyService {
	svc := NewWarrantyService(repo, products, ids, nil, 0, nil, nil)
	svc.now = fixedNow(testNow)
	return svc
}

func validCreateRequest() dto.CreateWarrantyRequest {
	return dto.CreateWarrantyRequest{
		CustomerName:       "Budi",
		PhoneNumber:        "+628111111111",
		CustomerAddress:    "Jl. Example 1",
		ProductID:          "11111111-1111-1111-1111-111111111111",
		QuantityPurchased:  1,
		PurchaseDate:       testNow.AddDate(0, -1, 0),
		WarrantyValidUntil: testNow.AddDate(1, 0, 0),
	}
}

func TestWarrantyCreateDerivesStatusFromDate(t *testing.T) {
	repo := newStubWarrantyRepo()
	products := newStubProductReader("11111111-1111-1111-1111-111111111111")
	svc := newWarrantyService(repo, products, &sequenceIDs{ids: []string{"WR-00000001-001"}})

	record, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, models.WarrantyStatusActive, record.WarrantyStatus)
	assert.Equal(t, "WR-00000001-001", record.WarrantyID)
	require.NotNil(t, record.Product)

	expired := validCreateRequest()
	expired.PurchaseDate = testNow.AddDate(-2, 0, 0)
	expired.WarrantyValidUntil = testNow.AddDate(-1, 0, 0)
	svc.ids = &sequenceIDs{ids: []string{"WR-00000001-002"}}

	record, err = svc.Create(context.Background(), expired)
	require.NoError(t, err)
	assert.Equal(t, models.WarrantyStatusExpired, record.WarrantyStatus)
}

func TestWarrantyCreateStatusOverrideWins(t *testing.T) {
	repo := newStubWarrantyRepo()
	products := newStubProductReader("11111111-1111-1111-1111-111111111111")
	svc := newWarrantyService(repo, products, &sequenceIDs{ids: []string{"WR-00000001-001"}})

	req := validCreateRequest()
	voided := models.WarrantyStatusVoided
	req.WarrantyStatus = &voided

	record, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.WarrantyStatusVoided, record.WarrantyStatus)
}

func TestWarrantyCreateRejectsInvertedDates(t *testing.T) {
	repo := newStubWarrantyRepo()
	products := newStubProductReader("11111111-1111-1111-1111-111111111111")
	svc := newWarrantyService(repo, products, &sequenceIDs{ids: []string{"WR-00000001-001"}})

	req := validCreateRequest()
	req.WarrantyValidUntil = req.PurchaseDate.AddDate(0, 0, -1)

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestWarrantyCreateRetriesOnIDCollision(t *testing.T) {
	repo := newStubWarrantyRepo()
	repo.failCreates = 2
	products := newStubProductReader("11111111-1111-1111-1111-111111111111")
	gen := &sequenceIDs{ids: []string{"WR-00000001-001", "WR-00000001-002", "WR-00000001-003"}}
	svc := newWarrantyService(repo, products, gen)

	record, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "WR-00000001-003", record.WarrantyID)
	assert.Equal(t, 3, gen.idx)
}

func TestWarrantyCreateGivesUpAfterBoundedRetries(t *testing.T) {
	repo := newStubWarrantyRepo()
	repo.failCreates = int32(maxIDAttempts)
	products := newStubProductReader("11111111-1111-1111-1111-111111111111")
	ids := make([]string, maxIDAttempts)
	for i := range ids {
		ids[i] = "WR-collide"
	}
	svc := newWarrantyService(repo, products, &sequenceIDs{ids: ids})

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestWarrantyCreateUnknownProduct(t *testing.T) {
	repo := newStubWarrantyRepo()
	products := newStubProductReader()
	svc := newWarrantyService(repo, products, &sequenceIDs{ids: []string{"WR-00000001-001"}})

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestWarrantyUpdateRederivesStatusOnDateChange(t *testing.T) {
	repo := newStubWarrantyRepo()
	products := newStubProductReader("11111111-1111-1111-1111-111111111111")
	svc := newWarrantyService(repo, products, &sequenceIDs{ids: []string{"WR-00000001-001"}})

	record, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.Equal(t, models.WarrantyStatusActive, record.WarrantyStatus)

	past := testNow.AddDate(0, -1, 0).Add(time.Hour)
	updated, err := svc.Update(context.Background(), record.ID, dto.UpdateWarrantyRequest{WarrantyValidUntil: &past})
	require.NoError(t, err)
	assert.Equal(t, models.WarrantyStatusExpired, updated.WarrantyStatus)

	// Explicit status on the same edit wins over the derived one.
	future := testNow.AddDate(2, 0, 0)
	voided := models.WarrantyStatusVoided
	updated, err = svc.Update(context.Background(), record.ID, dto.UpdateWarrantyRequest{WarrantyValidUntil: &future, WarrantyStatus: &voided})
	require.NoError(t, err)
	assert.Equal(t, models.WarrantyStatusVoided, updated.WarrantyStatus)
}

func TestWarrantySweepExpiredIsIdempotent(t *testing.T) {
	repo := newStubWarrantyRepo()
	products := newStubProductReader("11111111-1111-1111-1111-111111111111")
	svc := newWarrantyService(repo, products, &sequenceIDs{ids: []string{"WR-00000001-001", "WR-00000001-002", "WR-00000001-003"}})

	lapsed := validCreateRequest()
	lapsed.PurchaseDate = testNow.AddDate(-2, 0, 0)
	lapsed.WarrantyValidUntil = testNow.AddDate(-1, 0, 0)
	active := models.WarrantyStatusActive
	lapsed.WarrantyStatus = &active

	_, err := svc.Create(context.Background(), lapsed)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	result, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.ModifiedCount)

	result, err = svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.ModifiedCount)
}

func TestWarrantyEligibilityBuckets(t *testing.T) {
	repo := newStubWarrantyRepo()
	products := newStubProductReader("11111111-1111-1111-1111-111111111111")
	svc := newWarrantyService(repo, products, &sequenceIDs{ids: []string{"WR-00000001-001", "WR-00000001-002", "WR-00000001-003"}})

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	expired := validCreateRequest()
	expired.PurchaseDate = testNow.AddDate(-3, 0, 0)
	expired.WarrantyValidUntil = testNow.AddDate(-2, 0, 0)
	_, err = svc.Create(context.Background(), expired)
	require.NoError(t, err)

	voidedReq := validCreateRequest()
	voided := models.WarrantyStatusVoided
	voidedReq.WarrantyStatus = &voided
	_, err = svc.Create(context.Background(), voidedReq)
	require.NoError(t, err)

	result, err := svc.Eligibility(context.Background(), "+628111111111")
	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Equal(t, 3, result.TotalWarranties)
	assert.Len(t, result.Active, 1)
	assert.Len(t, result.Expired, 1)
	assert.Len(t, result.Voided, 1)
}

func TestWarrantyEligibilityNoRecords(t *testing.T) {
	repo := newStubWarrantyRepo()
	products := newStubProductReader()
	svc := newWarrantyService(repo, products, &sequenceIDs{})

	result, err := svc.Eligibility(context.Background(), "+620000000000")
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Zero(t, result.TotalWarranties)
	assert.Empty(t, result.Active)
	assert.Empty(t, result.Expired)
	assert.Empty(t, result.Voided)
}
