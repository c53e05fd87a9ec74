package models

import (
	"time"
)

// PetProfile holds the disclosure payload shown to an emergency scanner
// for a pet tag. One-to-one with a QRTag.
type PetProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	QRTagID     uint      `gorm:"uniqueIndex;not null" json:"qr_tag_id"`
	PetName     string    `gorm:"type:varchar(100)" json:"pet_name" validate:"required,max=100"`
	Breed       string    `gorm:"type:varchar(100)" json:"breed" validate:"max=100"`
	OwnerName   string    `gorm:"type:varchar(150)" json:"owner_name" validate:"max=150"`
	OwnerMobile string    `gorm:"type:varchar(20)" json:"owner_mobile" validate:"max=20"`
	Notes       string    `gorm:"type:text" json:"notes" validate:"max=1000"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the PetProfile model
func (PetProfile) TableName() string {
	return "pet_profiles"
}
