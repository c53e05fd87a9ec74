package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/guardtag/GuardTag/app/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.QRTag{}, &models.SubscriptionLog{})
	require.NoError(t, err)

	return db
}

func createTag(t *testing.T, db *gorm.DB, tag models.QRTag) *models.QRTag {
	require.NoError(t, db.Create(&tag).Error)
	return &tag
}

func ledgerRows(t *testing.T, db *gorm.DB, tagID uint) []models.SubscriptionLog {
	var rows []models.SubscriptionLog
	require.NoError(t, db.Where("qr_tag_id = ?", tagID).Order("created_at ASC").Find(&rows).Error)
	return rows
}

func TestActivate_FirstAndSecondCall(t *testing.T) {
	db := setupTestDB(t)
	l := New(db)
	ctx := context.Background()

	tag := createTag(t, db, models.QRTag{Code: "ABC123000001", Type: models.TAG_TYPE_VEHICLE, Status: models.TAG_STATUS_INACTIVE})

	updated, err := l.Activate(ctx, "abc123000001")
	require.NoError(t, err)
	assert.Equal(t, models.TAG_STATUS_ACTIVE, updated.Status)
	require.NotNil(t, updated.ActivatedAt)
	require.NotNil(t, updated.ExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(1, 0, 0), *updated.ExpiresAt, 5*time.Second)

	rows := ledgerRows(t, db, tag.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].YearsAdded)
	assert.Zero(t, rows[0].AmountPaid)

	// second activation is rejected and leaves no extra ledger row
	_, err = l.Activate(ctx, "ABC123000001")
	assert.ErrorIs(t, err, ErrAlreadyActive)
	assert.Len(t, ledgerRows(t, db, tag.ID), 1)
}

func TestActivate_UnknownCode(t *testing.T) {
	db := setupTestDB(t)
	l := New(db)

	_, err := l.Activate(context.Background(), "MISSING00001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExtend_InvalidInput(t *testing.T) {
	db := setupTestDB(t)
	l := New(db)
	ctx := context.Background()

	_, err := l.Extend(ctx, "ANY", 0, 10)
	assert.ErrorIs(t, err, ErrInvalidYears)

	_, err = l.Extend(ctx, "ANY", 1, -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestExtend_UnknownCode(t *testing.T) {
	db := setupTestDB(t)
	l := New(db)

	_, err := l.Extend(context.Background(), "MISSING00001", 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, ledgerRows(t, db, 0))
}

func TestExtend_FirstActivation(t *testing.T) {
	db := setupTestDB(t)
	l := New(db)

	tag := createTag(t, db, models.QRTag{Code: "FRESH0000001", Type: models.TAG_TYPE_VEHICLE, Status: models.TAG_STATUS_INACTIVE})

	updated, err := l.Extend(context.Background(), "fresh0000001", 1, 49.50)
	require.NoError(t, err)

	assert.Equal(t, models.TAG_STATUS_ACTIVE, updated.Status)
	require.NotNil(t, updated.ActivatedAt)
	require.NotNil(t, updated.ExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(1, 0, 0), *updated.ExpiresAt, 5*time.Second)
	assert.InDelta(t, 49.50, updated.PricePaid, 0.001)

	rows := ledgerRows(t, db, tag.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].YearsAdded)
	assert.InDelta(t, 49.50, rows[0].AmountPaid, 0.001)
}

func TestExtend_AdditiveRenewalBeforeExpiry(t *testing.T) {
	db := setupTestDB(t)
	l := New(db)

	activated := time.Now().Add(-30 * 24 * time.Hour)
	expires := time.Now().Add(90 * 24 * time.Hour)
	createTag(t, db, models.QRTag{
		Code: "RENEW0000001", Type: models.TAG_TYPE_VEHICLE, Status: models.TAG_STATUS_ACTIVE,
		ActivatedAt: &activated, ExpiresAt: &expires, PricePaid: 49.50,
	})

	updated, err := l.Extend(context.Background(), "RENEW0000001", 1, 49.50)
	require.NoError(t, err)

	// pre-expiry renewal stacks on the current expiry, it does not reset
	assert.WithinDuration(t, expires.AddDate(1, 0, 0), *updated.ExpiresAt, time.Second)
	assert.InDelta(t, 99.00, updated.PricePaid, 0.001)
	assert.Equal(t, activated.Unix(), updated.ActivatedAt.Unix(), "activation timestamp is set once")
}

func TestExtend_LapsedRenewalStartsFromNow(t *testing.T) {
	db := setupTestDB(t)
	l := New(db)

	activated := time.Now().AddDate(-2, 0, 0)
	expired := time.Now().AddDate(-1, 0, 0)
	createTag(t, db, models.QRTag{
		Code: "LAPSED000001", Type: models.TAG_TYPE_PET, Status: models.TAG_STATUS_ACTIVE,
		ActivatedAt: &activated, ExpiresAt: &expired,
	})

	updated, err := l.Extend(context.Background(), "LAPSED000001", 2, 80)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(2, 0, 0), *updated.ExpiresAt, 5*time.Second)
}

func TestExtend_NotIdempotent(t *testing.T) {
	db := setupTestDB(t)
	l := New(db)

	tag := createTag(t, db, models.QRTag{Code: "TWICE0000001", Type: models.TAG_TYPE_VEHICLE, Status: models.TAG_STATUS_INACTIVE})

	_, err := l.Extend(context.Background(), "TWICE0000001", 1, 30)
	require.NoError(t, err)
	updated, err := l.Extend(context.Background(), "TWICE0000001", 1, 30)
	require.NoError(t, err)

	// two identical calls are two payments: two ledger rows, two years
	rows := ledgerRows(t, db, tag.ID)
	assert.Len(t, rows, 2)
	assert.WithinDuration(t, time.Now().AddDate(2, 0, 0), *updated.ExpiresAt, 5*time.Second)
	assert.InDelta(t, 60, updated.PricePaid, 0.001)
}
