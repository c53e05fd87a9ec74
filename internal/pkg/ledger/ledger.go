// Package ledger activates and extends a tag's paid period and records
// every transaction in the append-only subscription log.
package ledger

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/guardtag/GuardTag/app/models"
	"github.com/guardtag/GuardTag/internal/pkg/database"
)

var (
	ErrNotFound      = errors.New("tag not found")
	ErrAlreadyActive = errors.New("tag already active")
	ErrInvalidYears  = errors.New("years must be at least 1")
	ErrInvalidAmount = errors.New("amount must not be negative")
)

// Ledger implements subscription extension over the tag store.
type Ledger struct {
	db *gorm.DB
}

// New creates a ledger bound to the given database handle
func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Activate performs the first-time transition from inactive to active,
// starting the subscription clock with one plan year. The grant is
// recorded in the ledger as a zero-amount transaction.
func (l *Ledger) Activate(ctx context.Context, code string) (*models.QRTag, error) {
	var updated *models.QRTag

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.QRTag
		err := database.LockForUpdate(tx).
			Where("code = ?", models.NormalizeCode(code)).
			First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if tag.IsActive() {
			return ErrAlreadyActive
		}

		now := time.Now()
		tag.Status = models.TAG_STATUS_ACTIVE
		tag.ActivatedAt = &now
		if tag.ExpiresAt == nil {
			expires := now.AddDate(1, 0, 0)
			tag.ExpiresAt = &expires
		}

		if err := tx.Save(&tag).Error; err != nil {
			return err
		}

		entry := &models.SubscriptionLog{QRTagID: tag.ID, YearsAdded: 1, AmountPaid: 0}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		updated = &tag
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Extend activates the tag if needed and advances its expiry by whole
// years. Renewal is additive: extending before expiry stacks on the
// current expiry date, extending after expiry (or first activation)
// starts from now. Each call appends exactly one ledger row; calling
// twice extends twice, because each call is a real payment.
func (l *Ledger) Extend(ctx context.Context, code string, years int, amount float64) (*models.QRTag, error) {
	if years < 1 {
		return nil, ErrInvalidYears
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	var updated *models.QRTag

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.QRTag
		err := database.LockForUpdate(tx).
			Where("code = ?", models.NormalizeCode(code)).
			First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		now := time.Now()
		tag.Status = models.TAG_STATUS_ACTIVE
		if tag.ActivatedAt == nil {
			tag.ActivatedAt = &now
		}

		base := now
		if tag.ExpiresAt != nil && tag.ExpiresAt.After(now) {
			base = *tag.ExpiresAt
		}
		expires := base.AddDate(years, 0, 0)
		tag.ExpiresAt = &expires
		tag.PricePaid += amount

		if err := tx.Save(&tag).Error; err != nil {
			return err
		}

		entry := &models.SubscriptionLog{
			QRTagID:    tag.ID,
			YearsAdded: years,
			AmountPaid: amount,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		updated = &tag
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
