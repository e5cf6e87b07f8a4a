package widget

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/memohit/boostacart-backend/internal/repo"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
)

// Repository persists widget settings.
type Repository struct {
	repo.Base
}

// NewRepository constructs a widget settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByStoreID loads the settings row, if the merchant ever saved one.
func (r *Repository) FindByStoreID(ctx context.Context, storeID uuid.UUID) (*models.WidgetSettings, error) {
	var settings models.WidgetSettings
	err := r.DB(ctx).Where("store_id = ?", storeID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "widget settings not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading widget settings")
	}
	return &settings, nil
}

// Upsert writes the settings row keyed by store.
func (r *Repository) Upsert(ctx context.Context, settings *models.WidgetSettings) error {
	err := r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"heading", "description", "button_text", "background_color",
				"text_color", "button_color", "overlay_opacity", "is_active",
				"show_email", "show_phone", "discount_code", "redirect_url",
				"show_coupon_page", "updated_at",
			}),
		}).
		Create(settings).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving widget settings")
	}
	return nil
}
