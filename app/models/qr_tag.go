package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	TAG_TYPE_VEHICLE = "vehicle"
	TAG_TYPE_PET     = "pet"

	TAG_STATUS_INACTIVE = "inactive"
	TAG_STATUS_ACTIVE   = "active"

	PLAN_TYPE_YEARLY = "yearly"
)

// QRTag is the database record behind a single physical QR sticker.
// A tag is created inactive, activated once, extended any number of times
// and never deleted. Expiry is derived from ExpiresAt at read time.
type QRTag struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Code        string     `gorm:"uniqueIndex;type:varchar(64)" json:"qr_code" validate:"required,min=4,max=64"`
	Type        string     `gorm:"type:varchar(20);default:'vehicle'" json:"type" validate:"oneof=vehicle pet"`
	Status      string     `gorm:"type:varchar(20);default:'inactive'" json:"status" validate:"oneof=inactive active"`
	PlanType    string     `gorm:"type:varchar(50);default:'yearly'" json:"plan_type"`
	PricePaid   float64    `gorm:"type:decimal(10,2);default:0" json:"price_paid"`
	ActivatedAt *time.Time `gorm:"type:timestamp;default:null" json:"activated_at"`
	ExpiresAt   *time.Time `gorm:"type:timestamp;default:null" json:"expires_at"`
	BatchID     *uint      `gorm:"index" json:"batch_id,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the QRTag model
func (QRTag) TableName() string {
	return "qr_tags"
}

// NormalizeCode maps externally supplied codes to the stored convention.
// Every read and write path must go through this helper so lookups never
// miss on case or stray whitespace.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (t *QRTag) Validate() error {
	v := validator.New()

	return v.Struct(t)
}

// IsActive reports whether the tag has been activated
func (t *QRTag) IsActive() bool {
	return t.Status == TAG_STATUS_ACTIVE
}

// IsExpired reports whether the paid period is over. Tags without an
// expiry date never expire.
func (t *QRTag) IsExpired() bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(time.Now())
}

// IsValidTagType checks an externally supplied tag type
func IsValidTagType(tagType string) bool {
	return tagType == TAG_TYPE_VEHICLE || tagType == TAG_TYPE_PET
}
