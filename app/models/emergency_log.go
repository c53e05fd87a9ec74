package models

import (
	"time"
)

const (
	EMERGENCY_ACTION_VIEW = "view"
	EMERGENCY_ACTION_SMS  = "sms"
	EMERGENCY_ACTION_CALL = "call"
)

// EmergencyLog records every disclosure of owner contact info, both for
// auditing and for the per-caller rate limit window. Append-only.
type EmergencyLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QRTagID    uint      `gorm:"index;not null" json:"qr_tag_id"`
	ActionType string    `gorm:"type:varchar(10);not null" json:"action_type"`
	CallerIP   string    `gorm:"type:varchar(45);index" json:"caller_ip"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for the EmergencyLog model
func (EmergencyLog) TableName() string {
	return "emergency_logs"
}

// IsContactAction checks an externally supplied action type against the
// actions a caller may request. "view" is reserved for the resolver.
func IsContactAction(action string) bool {
	return action == EMERGENCY_ACTION_SMS || action == EMERGENCY_ACTION_CALL
}
