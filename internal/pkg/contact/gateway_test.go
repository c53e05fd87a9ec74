package contact

import (
	"context"
	"fmt"
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

	err = db.AutoMigrate(&models.QRTag{}, &models.EmergencyLog{})
	require.NoError(t, err)

	return db
}

func activeTag(t *testing.T, db *gorm.DB, code string) *models.QRTag {
	activated := time.Now().Add(-time.Hour)
	expires := time.Now().AddDate(1, 0, 0)
	tag := &models.QRTag{
		Code: code, Type: models.TAG_TYPE_VEHICLE, Status: models.TAG_STATUS_ACTIVE,
		ActivatedAt: &activated, ExpiresAt: &expires,
	}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func TestRecord_InvalidAction(t *testing.T) {
	db := setupTestDB(t)
	g := New(db)
	activeTag(t, db, "CONTACT00001")

	for _, action := range []string{"", "view", "email"} {
		err := g.Record(context.Background(), "CONTACT00001", action, "203.0.113.7")
		assert.ErrorIs(t, err, ErrInvalidAction, "action %q", action)
	}
}

func TestRecord_ForbiddenStates(t *testing.T) {
	db := setupTestDB(t)
	g := New(db)
	ctx := context.Background()

	t.Run("unknown code", func(t *testing.T) {
		err := g.Record(ctx, "MISSING00001", models.EMERGENCY_ACTION_CALL, "203.0.113.7")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("inactive tag", func(t *testing.T) {
		require.NoError(t, db.Create(&models.QRTag{Code: "INACTIVE0001", Type: models.TAG_TYPE_PET, Status: models.TAG_STATUS_INACTIVE}).Error)
		err := g.Record(ctx, "INACTIVE0001", models.EMERGENCY_ACTION_SMS, "203.0.113.7")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("expired tag", func(t *testing.T) {
		activated := time.Now().AddDate(-2, 0, 0)
		expired := time.Now().Add(-time.Minute)
		require.NoError(t, db.Create(&models.QRTag{
			Code: "EXPIRED00001", Type: models.TAG_TYPE_VEHICLE, Status: models.TAG_STATUS_ACTIVE,
			ActivatedAt: &activated, ExpiresAt: &expired,
		}).Error)
		err := g.Record(ctx, "EXPIRED00001", models.EMERGENCY_ACTION_CALL, "203.0.113.7")
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestRecord_RateLimitWindow(t *testing.T) {
	db := setupTestDB(t)
	g := New(db)
	ctx := context.Background()
	tag := activeTag(t, db, "LIMITED00001")

	// five calls inside the window succeed
	for i := 0; i < RateLimitMax; i++ {
		require.NoError(t, g.Record(ctx, "LIMITED00001", models.EMERGENCY_ACTION_CALL, "203.0.113.7"), "call %d", i+1)
	}

	// the sixth is rejected
	err := g.Record(ctx, "LIMITED00001", models.EMERGENCY_ACTION_CALL, "203.0.113.7")
	assert.ErrorIs(t, err, ErrRateLimited)

	// a different caller is unaffected
	require.NoError(t, g.Record(ctx, "LIMITED00001", models.EMERGENCY_ACTION_SMS, "198.51.100.1"))

	// once the window has passed the caller may log again
	require.NoError(t, db.Model(&models.EmergencyLog{}).
		Where("caller_ip = ?", "203.0.113.7").
		Update("created_at", time.Now().Add(-3*time.Minute)).Error)
	require.NoError(t, g.Record(ctx, "LIMITED00001", models.EMERGENCY_ACTION_CALL, "203.0.113.7"))

	var count int64
	require.NoError(t, db.Model(&models.EmergencyLog{}).Where("qr_tag_id = ?", tag.ID).Count(&count).Error)
	assert.Equal(t, int64(7), count)
}

func TestRecord_WindowIsPerCaller(t *testing.T) {
	db := setupTestDB(t)
	g := New(db)
	ctx := context.Background()
	activeTag(t, db, "PERCALLER001")

	for i := 0; i < RateLimitMax; i++ {
		ip := fmt.Sprintf("203.0.113.%d", i+1)
		require.NoError(t, g.Record(ctx, "PERCALLER001", models.EMERGENCY_ACTION_CALL, ip))
	}
	// every caller used a single slot, nobody is limited
	require.NoError(t, g.Record(ctx, "PERCALLER001", models.EMERGENCY_ACTION_CALL, "203.0.113.1"))
}
