package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Batch groups the tags created in one issuance transaction. Quantity
// always equals the number of tags referencing the batch.
type Batch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UUID      string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	Name      string    `gorm:"type:varchar(150)" json:"name" validate:"max=150"`
	AgentName string    `gorm:"type:varchar(150);default:null" json:"agent_name,omitempty" validate:"max=150"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,min=1,max=5000"`
	OrderID   *uint     `gorm:"index" json:"order_id,omitempty"`
	Tags      []QRTag   `gorm:"foreignKey:BatchID" json:"tags,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Batch model
func (Batch) TableName() string {
	return "qr_batches"
}

// BeforeCreate assigns the public identifier
func (b *Batch) BeforeCreate(tx *gorm.DB) error {
	if b.UUID == "" {
		b.UUID = uuid.New().String()
	}
	return nil
}
