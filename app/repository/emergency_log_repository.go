package repository

import (
	"time"

	"github.com/guardtag/GuardTag/app/models"
	"gorm.io/gorm"
)

// emergencyLogRepository implements the EmergencyLogRepository interface
type emergencyLogRepository struct {
	db *gorm.DB
}

// NewEmergencyLogRepository creates a new emergency log repository instance
func NewEmergencyLogRepository(db *gorm.DB) EmergencyLogRepository {
	return &emergencyLogRepository{db: db}
}

// Append inserts one audit row. The log is append-only; there are no
// update or delete operations.
func (r *emergencyLogRepository) Append(entry *models.EmergencyLog) error {
	return r.db.Create(entry).Error
}

// CountByCallerSince counts rows for a caller inside the trailing rate
// limit window
func (r *emergencyLogRepository) CountByCallerSince(callerIP string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.EmergencyLog{}).
		Where("caller_ip = ? AND created_at > ?", callerIP, since).
		Count(&count).Error
	return count, err
}

// ListByTagID retrieves the newest audit rows for a tag
func (r *emergencyLogRepository) ListByTagID(tagID uint, limit int) ([]models.EmergencyLog, error) {
	var entries []models.EmergencyLog
	err := r.db.Where("qr_tag_id = ?", tagID).
		Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
