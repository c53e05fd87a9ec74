package issuer

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

	err = db.AutoMigrate(&models.QRTag{}, &models.Batch{}, &models.TagOrder{})
	require.NoError(t, err)

	return db
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestIssue_InvalidQuantity(t *testing.T) {
	db := setupTestDB(t)
	is := New(db)
	ctx := context.Background()

	for _, quantity := range []int{0, -1, 5001} {
		_, err := is.Issue(ctx, IssueRequest{Quantity: quantity})
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", quantity)
	}

	assert.Zero(t, countRows(t, db, &models.QRTag{}), "rejected issuance must not write")
	assert.Zero(t, countRows(t, db, &models.Batch{}))
}

func TestIssue_CreatesBatchAndTags(t *testing.T) {
	db := setupTestDB(t)
	is := New(db)

	result, err := is.Issue(context.Background(), IssueRequest{Quantity: 25, Name: "march print run", AgentName: "Priya"})
	require.NoError(t, err)
	require.NotNil(t, result.Batch)
	assert.Nil(t, result.Order)
	assert.Len(t, result.Codes, 25)
	assert.Equal(t, 25, result.Batch.Quantity)
	assert.NotEmpty(t, result.Batch.UUID)

	var tags []models.QRTag
	require.NoError(t, db.Where("batch_id = ?", result.Batch.ID).Find(&tags).Error)
	require.Len(t, tags, 25)

	seen := make(map[string]struct{})
	for _, tag := range tags {
		assert.Equal(t, models.TAG_STATUS_INACTIVE, tag.Status)
		assert.Equal(t, models.TAG_TYPE_VEHICLE, tag.Type, "type defaults to vehicle")
		assert.Equal(t, models.PLAN_TYPE_YEARLY, tag.PlanType)
		if _, dup := seen[tag.Code]; dup {
			t.Fatalf("duplicate code in batch: %s", tag.Code)
		}
		seen[tag.Code] = struct{}{}
	}
}

func TestIssue_AgainstOrder(t *testing.T) {
	db := setupTestDB(t)
	is := New(db)
	ctx := context.Background()

	order := &models.TagOrder{CustomerName: "Acme Fleet", Mobile: "9876543210", QuantityOrdered: 10, Status: models.ORDER_STATUS_PENDING}
	require.NoError(t, db.Create(order).Error)

	t.Run("partial fulfillment keeps order pending", func(t *testing.T) {
		result, err := is.Issue(ctx, IssueRequest{Quantity: 4, AgainstOrder: true})
		require.NoError(t, err)
		require.NotNil(t, result.Order)
		assert.Equal(t, 4, result.Order.QuantityFulfilled)
		assert.Equal(t, models.ORDER_STATUS_PENDING, result.Order.Status)
		require.NotNil(t, result.Batch.OrderID)
		assert.Equal(t, order.ID, *result.Batch.OrderID)
	})

	t.Run("exceeding the remainder is rejected without writes", func(t *testing.T) {
		before := countRows(t, db, &models.QRTag{})
		_, err := is.Issue(ctx, IssueRequest{Quantity: 7, AgainstOrder: true})
		assert.ErrorIs(t, err, ErrQuantityExceedsOrder)
		assert.Equal(t, before, countRows(t, db, &models.QRTag{}))
		assert.Equal(t, int64(1), countRows(t, db, &models.Batch{}))
	})

	t.Run("filling the remainder completes the order", func(t *testing.T) {
		result, err := is.Issue(ctx, IssueRequest{Quantity: 6, AgainstOrder: true})
		require.NoError(t, err)
		assert.Equal(t, 10, result.Order.QuantityFulfilled)
		assert.Equal(t, models.ORDER_STATUS_COMPLETED, result.Order.Status)
	})

	t.Run("no pending order left", func(t *testing.T) {
		_, err := is.Issue(ctx, IssueRequest{Quantity: 1, AgainstOrder: true})
		assert.ErrorIs(t, err, ErrNoPendingOrder)
	})
}

func TestIssue_PicksOldestPendingOrder(t *testing.T) {
	db := setupTestDB(t)
	is := New(db)

	older := &models.TagOrder{CustomerName: "First In", Mobile: "1111111111", QuantityOrdered: 5, Status: models.ORDER_STATUS_PENDING}
	require.NoError(t, db.Create(older).Error)
	newer := &models.TagOrder{CustomerName: "Second In", Mobile: "2222222222", QuantityOrdered: 5, Status: models.ORDER_STATUS_PENDING}
	require.NoError(t, db.Create(newer).Error)
	// force a strict ordering; sqlite timestamps can tie within a test
	require.NoError(t, db.Model(older).Update("created_at", older.CreatedAt.Add(-time.Minute)).Error)

	result, err := is.Issue(context.Background(), IssueRequest{Quantity: 5, AgainstOrder: true})
	require.NoError(t, err)
	assert.Equal(t, older.ID, result.Order.ID)
	assert.Equal(t, models.ORDER_STATUS_COMPLETED, result.Order.Status)
}
