package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/memohit/boostacart-backend/pkg/enums"
)

// PlanCatalogEntry captures the public pricing metadata for a plan.
type PlanCatalogEntry struct {
	ID           enums.Plan      `gorm:"column:id;primaryKey"`
	MonthlyPrice decimal.Decimal `gorm:"column:monthly_price;type:numeric(12,2);not null"`
	CurrencyCode string          `gorm:"column:currency_code;not null;default:'USD'"`
	MaxLeads     int             `gorm:"column:max_leads;not null"`
	Features     pq.StringArray  `gorm:"column:features;type:text[];default:ARRAY[]::text[]"`
	IsDefault    bool            `gorm:"column:is_default;not null;default:false"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the catalog under the plans table.
func (PlanCatalogEntry) TableName() string {
	return "plans"
}
