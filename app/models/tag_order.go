package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ORDER_STATUS_PENDING   = "pending"
	ORDER_STATUS_COMPLETED = "completed"
)

// TagOrder is a customer's request for a quantity of tags. Orders are
// fulfilled incrementally by batches; status flips to completed exactly
// when quantity_fulfilled reaches quantity_ordered.
type TagOrder struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UUID              string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	CustomerName      string    `gorm:"type:varchar(150)" json:"customer_name" validate:"required,min=2,max=150"`
	Mobile            string    `gorm:"type:varchar(20)" json:"mobile" validate:"required,min=6,max=20"`
	QuantityOrdered   int       `gorm:"not null" json:"quantity_ordered" validate:"required,min=1,max=100000"`
	QuantityFulfilled int       `gorm:"default:0" json:"quantity_fulfilled"`
	Status            string    `gorm:"type:varchar(20);default:'pending';index" json:"status" validate:"oneof=pending completed"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the TagOrder model
func (TagOrder) TableName() string {
	return "tag_orders"
}

// BeforeCreate assigns the public identifier
func (o *TagOrder) BeforeCreate(tx *gorm.DB) error {
	if o.UUID == "" {
		o.UUID = uuid.New().String()
	}
	return nil
}

func (o *TagOrder) Validate() error {
	v := validator.New()

	return v.Struct(o)
}

// Remaining returns how many tags the order still needs
func (o *TagOrder) Remaining() int {
	return o.QuantityOrdered - o.QuantityFulfilled
}

// IsCompleted reports whether the order is fully fulfilled
func (o *TagOrder) IsCompleted() bool {
	return o.Status == ORDER_STATUS_COMPLETED
}
