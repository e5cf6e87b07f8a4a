package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/pkg/enums"
)

// Store represents the canonical tenant model. The shopify_domain column is
// the public lookup key the widget uses; counters are a denormalized cache
// maintained by the quota provider and the ingestion path.
type Store struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Name           string     `gorm:"column:name;not null"`
	Domain         string     `gorm:"column:domain;not null"`
	ShopifyDomain  string     `gorm:"column:shopify_domain;not null;uniqueIndex"`
	StoreSlug      *string    `gorm:"column:store_slug"`
	Plan           enums.Plan `gorm:"column:plan;not null;default:'Free'"`
	MaxLeads       int        `gorm:"column:max_leads;not null;default:50"`
	RemainingLeads int        `gorm:"column:remaining_leads;not null;default:50"`
	TotalLeads     int        `gorm:"column:total_leads;not null;default:0"`
	LeadsThisMonth int        `gorm:"column:leads_this_month;not null;default:0"`
	Installed      bool       `gorm:"column:installed;not null;default:false"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
