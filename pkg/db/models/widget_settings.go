package models

import (
	"time"

	"github.com/google/uuid"
)

// WidgetSettings holds per-store widget presentation. Columns are nullable so
// the resolver can substitute defaults for anything the merchant never set.
type WidgetSettings struct {
	StoreID         uuid.UUID `gorm:"column:store_id;type:uuid;primaryKey"`
	Heading         *string   `gorm:"column:heading"`
	Description     *string   `gorm:"column:description"`
	ButtonText      *string   `gorm:"column:button_text"`
	BackgroundColor *string   `gorm:"column:background_color"`
	TextColor       *string   `gorm:"column:text_color"`
	ButtonColor     *string   `gorm:"column:button_color"`
	OverlayOpacity  *float64  `gorm:"column:overlay_opacity"`
	IsActive        *bool     `gorm:"column:is_active"`
	ShowEmail       *bool     `gorm:"column:show_email"`
	ShowPhone       *bool     `gorm:"column:show_phone"`
	DiscountCode    *string   `gorm:"column:discount_code"`
	RedirectURL     *string   `gorm:"column:redirect_url"`
	ShowCouponPage  *bool     `gorm:"column:show_coupon_page"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
