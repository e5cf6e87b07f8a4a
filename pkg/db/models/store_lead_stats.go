package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/pkg/enums"
)

// StoreLeadStats is the denormalized per-store usage row the dashboard and
// admin list read. It is a cache of the canonical numbers, refreshed by the
// quota provider; the stores table stays authoritative.
type StoreLeadStats struct {
	StoreID        uuid.UUID  `gorm:"column:store_id;type:uuid;primaryKey"`
	StoreName      string     `gorm:"column:store_name;not null"`
	ShopifyDomain  string     `gorm:"column:shopify_domain;not null;uniqueIndex"`
	Plan           enums.Plan `gorm:"column:plan;not null"`
	MaxLeads       int        `gorm:"column:max_leads;not null"`
	RemainingLeads int        `gorm:"column:remaining_leads;not null"`
	LeadsThisMonth int        `gorm:"column:leads_this_month;not null"`
	LeadsToday     int        `gorm:"column:leads_today;not null"`
	TotalLeads     int        `gorm:"column:total_leads;not null"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the compatibility name used by the dashboard.
func (StoreLeadStats) TableName() string {
	return "store_lead_stats"
}
