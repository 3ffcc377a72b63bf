package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faisalcam/cctv-shop-api/internal/models"
)

func newClaimRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func claimRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "claim_id", "warranty_record_id", "customer_name", "phone_number", "issue_description", "claim_status", "resolved_at", "created_at", "updated_at"})
	for _, id := range ids {
		rows.AddRow(id, "WC-1234567"+id, "w1", "Customer", "+628111111111", "camera offline", "Pending", nil, time.Now(), time.Now())
	}
	return rows
}

func TestClaimRepositoryList(t *testing.T) {
	db, mock, cleanup := newClaimRepoMock(t)
	defer cleanup()
	repo := NewClaimRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+claimColumns+" FROM warranty_claims WHERE 1=1 ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(claimRows("c1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM warranty_claims WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.ClaimFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.Nil(t, list[0].ResolvedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepositoryFindByClaimID(t *testing.T) {
	db, mock, cleanup := newClaimRepoMock(t)
	defer cleanup()
	repo := NewClaimRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM warranty_claims WHERE claim_id = $1")).
		WithArgs("WC-12345678-042").
		WillReturnRows(claimRows("c1"))

	claim, err := repo.FindByClaimID(context.Background(), "WC-12345678-042")
	require.NoError(t, err)
	assert.Equal(t, "c1", claim.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newClaimRepoMock(t)
	defer cleanup()
	repo := NewClaimRepository(db)

	mock.ExpectExec("INSERT INTO warranty_claims").
		WithArgs(sqlmock.AnyArg(), "WC-12345678-042", "w1", "Customer", "+628111111111", "camera offline", models.ClaimStatusPending, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	claim := &models.WarrantyClaim{
		ClaimID:          "WC-12345678-042",
		WarrantyRecordID: "w1",
		CustomerName:     "Customer",
		PhoneNumber:      "+628111111111",
		IssueDescription: "camera offline",
		ClaimStatus:      models.ClaimStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), claim))
	assert.NotEmpty(t, claim.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepositoryUpdatePersistsResolution(t *testing.T) {
	db, mock, cleanup := newClaimRepoMock(t)
	defer cleanup()
	repo := NewClaimRepository(db)

	resolved := time.Now().UTC()
	mock.ExpectExec("UPDATE warranty_claims SET issue_description").
		WithArgs("camera offline", models.ClaimStatusApproved, &resolved, sqlmock.AnyArg(), "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	claim := &models.WarrantyClaim{
		ID:               "c1",
		IssueDescription: "camera offline",
		ClaimStatus:      models.ClaimStatusApproved,
		ResolvedAt:       &resolved,
	}
	require.NoError(t, repo.Update(context.Background(), claim))
	assert.NoError(t, mock.ExpectationsWereMet())
}
