package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead is the event record of one shopper submission. Rows are immutable
// after insert except for the is_saved flag.
type Lead struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID         uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	Name            string    `gorm:"column:name;not null"`
	Email           *string   `gorm:"column:email"`
	Phone           *string   `gorm:"column:phone"`
	DetectedProduct string    `gorm:"column:detected_product;not null"`
	ProductName     string    `gorm:"column:product_name;not null"`
	ProductTitle    *string   `gorm:"column:product_title"`
	ProductURL      *string   `gorm:"column:product_url"`
	ProductHandle   *string   `gorm:"column:product_handle"`
	ProductID       *string   `gorm:"column:product_id"`
	VariantID       *string   `gorm:"column:variant_id"`
	IsSaved         bool      `gorm:"column:is_saved;not null;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime;index"`
}
