package quota

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/memohit/boostacart-backend/internal/repo"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
)

// Repository reads store rows and lead counts for quota decisions.
type Repository struct {
	repo.Base
}

// NewRepository constructs a quota repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindStoreByDomain loads the store row by its shopify domain.
func (r *Repository) FindStoreByDomain(ctx context.Context, domain string) (*models.Store, error) {
	var store models.Store
	err := r.DB(ctx).Where("shopify_domain = ?", domain).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading store")
	}
	return &store, nil
}

// CountLeadsSince counts leads for the store created at or after the boundary.
func (r *Repository) CountLeadsSince(ctx context.Context, storeID uuid.UUID, since time.Time) (int, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Lead{}).
		Where("store_id = ? AND created_at >= ?", storeID, since).
		Count(&count).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting leads")
	}
	return int(count), nil
}

// CountLeadsTotal counts all leads ever captured for the store.
func (r *Repository) CountLeadsTotal(ctx context.Context, storeID uuid.UUID) (int, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Lead{}).
		Where("store_id = ?", storeID).
		Count(&count).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting leads")
	}
	return int(count), nil
}

// UpdateMaxLeads repairs the cached plan allowance on the store row.
func (r *Repository) UpdateMaxLeads(ctx context.Context, storeID uuid.UUID, maxLeads int) error {
	err := r.DB(ctx).
		Model(&models.Store{}).
		Where("id = ?", storeID).
		Update("max_leads", maxLeads).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating max leads")
	}
	return nil
}

// UpsertStats refreshes the denormalized per-store usage row.
func (r *Repository) UpsertStats(ctx context.Context, stats *models.StoreLeadStats) error {
	err := r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"store_name", "shopify_domain", "plan", "max_leads",
				"remaining_leads", "leads_this_month", "leads_today",
				"total_leads", "updated_at",
			}),
		}).
		Create(stats).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refreshing lead stats")
	}
	return nil
}
