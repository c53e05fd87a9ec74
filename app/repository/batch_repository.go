package repository

import (
	"github.com/guardtag/GuardTag/app/models"
	"gorm.io/gorm"
)

// batchRepository implements the BatchRepository interface
type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository creates a new batch repository instance
func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{db: db}
}

// GetByID retrieves a batch by its ID
func (r *batchRepository) GetByID(id uint) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.First(&batch, id).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// GetByUUID retrieves a batch by its public identifier
func (r *batchRepository) GetByUUID(uuid string) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.Where("uuid = ?", uuid).First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// List retrieves batches newest first with pagination
func (r *batchRepository) List(offset, limit int) ([]models.Batch, error) {
	var batches []models.Batch
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&batches).Error
	return batches, err
}

// Count returns the total number of batches
func (r *batchRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Batch{}).Count(&count).Error
	return count, err
}

// CountTags returns how many tags reference the batch
func (r *batchRepository) CountTags(batchID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.QRTag{}).Where("batch_id = ?", batchID).Count(&count).Error
	return count, err
}
