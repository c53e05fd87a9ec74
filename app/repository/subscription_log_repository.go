package repository

import (
	"github.com/guardtag/GuardTag/app/models"
	"gorm.io/gorm"
)

// subscriptionLogRepository implements the SubscriptionLogRepository interface
type subscriptionLogRepository struct {
	db *gorm.DB
}

// NewSubscriptionLogRepository creates a new subscription ledger repository instance
func NewSubscriptionLogRepository(db *gorm.DB) SubscriptionLogRepository {
	return &subscriptionLogRepository{db: db}
}

// Append inserts one ledger row. The ledger is append-only.
func (r *subscriptionLogRepository) Append(entry *models.SubscriptionLog) error {
	return r.db.Create(entry).Error
}

// ListByTagID retrieves the full ledger for a tag, oldest first
func (r *subscriptionLogRepository) ListByTagID(tagID uint) ([]models.SubscriptionLog, error) {
	var entries []models.SubscriptionLog
	err := r.db.Where("qr_tag_id = ?", tagID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}
