package plans

import (
	"context"

	"gorm.io/gorm"

	"github.com/memohit/boostacart-backend/internal/repo"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
)

// Repository reads the plan catalog.
type Repository struct {
	repo.Base
}

// NewRepository constructs a plan catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListAll returns every catalog entry, cheapest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.PlanCatalogEntry, error) {
	var rows []models.PlanCatalogEntry
	err := r.DB(ctx).Order("monthly_price ASC").Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing plans")
	}
	return rows, nil
}
