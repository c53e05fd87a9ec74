package repository

import (
	"github.com/guardtag/GuardTag/app/models"
	"gorm.io/gorm"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order in pending state
func (r *orderRepository) Create(order *models.TagOrder) error {
	return r.db.Create(order).Error
}

// GetByID retrieves an order by its ID
func (r *orderRepository) GetByID(id uint) (*models.TagOrder, error) {
	var order models.TagOrder
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List retrieves orders newest first with pagination
func (r *orderRepository) List(offset, limit int) ([]models.TagOrder, error) {
	var orders []models.TagOrder
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, err
}

// Count returns the total number of orders
func (r *orderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.TagOrder{}).Count(&count).Error
	return count, err
}
