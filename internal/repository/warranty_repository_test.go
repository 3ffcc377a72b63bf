package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faisalcam/cctv-shop-api/internal/models"
)

func newWarrantyRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func warrantyRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "warranty_id", "customer_name", "phone_number", "customer_address", "product_id", "quantity_purchased", "purchase_date", "warranty_valid_until", "warranty_status", "created_at", "updated_at"})
	for i, id := range ids {
		rows.AddRow(id, "WR-1234567"+id, "Customer", "+628111111111", "Jl. Example 1", "p1", 1, time.Now().AddDate(0, -i, 0), time.Now().AddDate(1, 0, 0), "Active", time.Now(), time.Now())
	}
	return rows
}

func TestWarrantyRepositoryList(t *testing.T) {
	db, mock, cleanup := newWarrantyRepoMock(t)
	defer cleanup()
	repo := NewWarrantyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+warrantyColumns+" FROM warranty_records WHERE 1=1 ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(warrantyRows("w1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM warranty_records WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.WarrantyFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWarrantyRepositoryListFiltersByStatus(t *testing.T) {
	db, mock, cleanup := newWarrantyRepoMock(t)
	defer cleanup()
	repo := NewWarrantyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM warranty_records WHERE 1=1 AND warranty_status = $1 ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs(models.WarrantyStatusExpired).
		WillReturnRows(warrantyRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM warranty_records WHERE 1=1 AND warranty_status = $1")).
		WithArgs(models.WarrantyStatusExpired).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	list, total, err := repo.List(context.Background(), models.WarrantyFilter{Status: models.WarrantyStatusExpired})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWarrantyRepositoryFindByPhoneNumberOrdering(t *testing.T) {
	db, mock, cleanup := newWarrantyRepoMock(t)
	defer cleanup()
	repo := NewWarrantyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM warranty_records WHERE phone_number = $1 ORDER BY purchase_date DESC, created_at DESC, id")).
		WithArgs("+628111111111").
		WillReturnRows(warrantyRows("w1", "w2"))

	records, err := repo.FindByPhoneNumber(context.Background(), "+628111111111")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "w1", records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWarrantyRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newWarrantyRepoMock(t)
	defer cleanup()
	repo := NewWarrantyRepository(db)

	mock.ExpectExec("INSERT INTO warranty_records").
		WithArgs(sqlmock.AnyArg(), "WR-12345678-001", "Customer", "+628111111111", "Jl. Example 1", "p1", 2, sqlmock.AnyArg(), sqlmock.AnyArg(), models.WarrantyStatusActive, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &models.WarrantyRecord{
		WarrantyID:         "WR-12345678-001",
		CustomerName:       "Customer",
		PhoneNumber:        "+628111111111",
		CustomerAddress:    "Jl. Example 1",
		ProductID:          "p1",
		QuantityPurchased:  2,
		PurchaseDate:       time.Now(),
		WarrantyValidUntil: time.Now().AddDate(1, 0, 0),
		WarrantyStatus:     models.WarrantyStatusActive,
	}
	require.NoError(t, repo.Create(context.Background(), record))
	assert.NotEmpty(t, record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWarrantyRepositorySweepExpired(t *testing.T) {
	db, mock, cleanup := newWarrantyRepoMock(t)
	defer cleanup()
	repo := NewWarrantyRepository(db)

	now := time.Now()
	mock.ExpectExec("UPDATE warranty_records SET warranty_status").
		WithArgs(models.WarrantyStatusExpired, now.UTC(), models.WarrantyStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	// Second pass finds nothing left to flip.
	mock.ExpectExec("UPDATE warranty_records SET warranty_status").
		WithArgs(models.WarrantyStatusExpired, now.UTC(), models.WarrantyStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err = repo.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(context.DeadlineExceeded))
	assert.False(t, IsUniqueViolation(nil))
}
