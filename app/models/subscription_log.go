package models

import (
	"time"
)

// SubscriptionLog is the append-only ledger of paid extensions. One row
// per renewal or activation transaction; rows are never updated or
// deleted.
type SubscriptionLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QRTagID    uint      `gorm:"index;not null" json:"qr_tag_id"`
	YearsAdded int       `gorm:"not null" json:"years_added"`
	AmountPaid float64   `gorm:"type:decimal(10,2);not null" json:"amount_paid"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the SubscriptionLog model
func (SubscriptionLog) TableName() string {
	return "subscription_logs"
}
