package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/pkg/enums"
)

// AdminAuditLog is the append-only trail of privileged mutations.
type AdminAuditLog struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID    uuid.UUID         `gorm:"column:store_id;type:uuid;not null;index"`
	StoreName  string            `gorm:"column:store_name;not null"`
	ActionType enums.AuditAction `gorm:"column:action_type;not null"`
	OldValue   string            `gorm:"column:old_value;not null"`
	NewValue   string            `gorm:"column:new_value;not null"`
	ChangedBy  string            `gorm:"column:changed_by;not null"`
	IPAddress  string            `gorm:"column:ip_address;not null"`
	UserAgent  string            `gorm:"column:user_agent;not null"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
}
