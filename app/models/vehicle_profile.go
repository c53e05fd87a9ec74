package models

import (
	"time"
)

// VehicleProfile holds the disclosure payload shown to an emergency
// scanner for a vehicle tag. One-to-one with a QRTag.
type VehicleProfile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	QRTagID       uint      `gorm:"uniqueIndex;not null" json:"qr_tag_id"`
	VehicleNumber string    `gorm:"type:varchar(50)" json:"vehicle_number" validate:"required,max=50"`
	Model         string    `gorm:"type:varchar(100)" json:"model" validate:"max=100"`
	BloodGroup    string    `gorm:"type:varchar(10)" json:"blood_group" validate:"max=10"`
	OwnerName     string    `gorm:"type:varchar(150)" json:"owner_name" validate:"max=150"`
	OwnerMobile   string    `gorm:"type:varchar(20)" json:"owner_mobile" validate:"max=20"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the VehicleProfile model
func (VehicleProfile) TableName() string {
	return "vehicle_profiles"
}
