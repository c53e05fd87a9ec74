package repository

import (
	"time"

	"github.com/guardtag/GuardTag/app/models"
	"gorm.io/gorm"
)

// tagRepository implements the TagRepository interface
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create inserts a new tag. The code must already be normalized.
func (r *tagRepository) Create(tag *models.QRTag) error {
	tag.Code = models.NormalizeCode(tag.Code)
	return r.db.Create(tag).Error
}

// GetByID retrieves a tag by its ID
func (r *tagRepository) GetByID(id uint) (*models.QRTag, error) {
	var tag models.QRTag
	err := r.db.First(&tag, id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByCode retrieves a tag by its code, normalizing first so lookups
// never miss on case or whitespace
func (r *tagRepository) GetByCode(code string) (*models.QRTag, error) {
	var tag models.QRTag
	err := r.db.Where("code = ?", models.NormalizeCode(code)).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update updates an existing tag
func (r *tagRepository) Update(tag *models.QRTag) error {
	return r.db.Save(tag).Error
}

// List retrieves tags newest first with pagination
func (r *tagRepository) List(offset, limit int) ([]models.QRTag, error) {
	var tags []models.QRTag
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tags).Error
	return tags, err
}

// ListWithVehicleProfile retrieves tags joined with their vehicle
// profile columns for the admin listing
func (r *tagRepository) ListWithVehicleProfile(offset, limit int) ([]TagWithVehicleProfile, error) {
	var rows []TagWithVehicleProfile
	err := r.db.Model(&models.QRTag{}).
		Select("qr_tags.code AS code, qr_tags.status, qr_tags.plan_type, qr_tags.price_paid, qr_tags.activated_at, qr_tags.expires_at, qr_tags.created_at, vehicle_profiles.vehicle_number, vehicle_profiles.owner_mobile").
		Joins("LEFT JOIN vehicle_profiles ON vehicle_profiles.qr_tag_id = qr_tags.id").
		Order("qr_tags.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// Count returns the total number of tags
func (r *tagRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.QRTag{}).Count(&count).Error
	return count, err
}

// GetStats aggregates the dashboard counters in a single query.
// CASE expressions instead of FILTER keep the query portable between
// MySQL and the SQLite test database.
func (r *tagRepository) GetStats() (*TagStats, error) {
	var stats TagStats
	now := time.Now()
	err := r.db.Model(&models.QRTag{}).
		Select(`
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS inactive,
			COALESCE(SUM(CASE WHEN status = ? AND expires_at IS NOT NULL AND expires_at < ? THEN 1 ELSE 0 END), 0) AS expired,
			COUNT(*) AS total,
			COALESCE(SUM(price_paid), 0) AS total_revenue`,
			models.TAG_STATUS_ACTIVE, models.TAG_STATUS_INACTIVE, models.TAG_STATUS_ACTIVE, now).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
