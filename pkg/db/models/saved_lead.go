package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedLead is an independent copy of a Lead the merchant flagged. Deleting
// one never touches the source lead.
type SavedLead struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	LeadID        uuid.UUID `gorm:"column:lead_id;type:uuid;not null;index"`
	StoreID       uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	Name          string    `gorm:"column:name;not null"`
	Email         *string   `gorm:"column:email"`
	Phone         *string   `gorm:"column:phone"`
	ProductName   string    `gorm:"column:product_name;not null"`
	ProductURL    *string   `gorm:"column:product_url"`
	LeadCreatedAt time.Time `gorm:"column:lead_created_at;not null"`
	SavedAt       time.Time `gorm:"column:saved_at;autoCreateTime"`
}
