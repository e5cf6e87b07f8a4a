package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/memohit/boostacart-backend/internal/repo"
	"github.com/memohit/boostacart-backend/pkg/db"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	"github.com/memohit/boostacart-backend/pkg/enums"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
)

// Repository backs the operator console.
type Repository struct {
	repo.Base
	client *db.Client
}

// NewRepository constructs an admin repository.
func NewRepository(client *db.Client) *Repository {
	return &Repository{Base: repo.NewBase(client.DB()), client: client}
}

// FindStore loads a store by primary key.
func (r *Repository) FindStore(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := r.DB(ctx).First(&store, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading store")
	}
	return &store, nil
}

// ListStoreStats returns the per-store usage rows, most recently updated
// first.
func (r *Repository) ListStoreStats(ctx context.Context) ([]models.StoreLeadStats, error) {
	var rows []models.StoreLeadStats
	err := r.DB(ctx).Order("updated_at DESC").Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing store stats")
	}
	return rows, nil
}

// UpdatePlan applies the plan change to the store row and recomputes its
// cached allowance, all inside one transaction.
func (r *Repository) UpdatePlan(ctx context.Context, storeID uuid.UUID, plan enums.Plan) (*models.Store, error) {
	var updated models.Store
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var store models.Store
		if err := tx.First(&store, "id = ?", storeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading store")
		}

		maxLeads := plan.MaxLeads()
		remaining := maxLeads - store.LeadsThisMonth
		if remaining < 0 {
			remaining = 0
		}

		if err := tx.
			Model(&models.Store{}).
			Where("id = ?", storeID).
			Updates(map[string]any{
				"plan":            plan,
				"max_leads":       maxLeads,
				"remaining_leads": remaining,
			}).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating plan")
		}

		// the stats table is the read model for the operator list and the
		// legacy dashboard; it has to change in the same transaction or
		// both show the old plan until the next snapshot refresh
		if err := tx.
			Model(&models.StoreLeadStats{}).
			Where("store_id = ?", storeID).
			Updates(map[string]any{
				"plan":            plan,
				"max_leads":       maxLeads,
				"remaining_leads": remaining,
				"updated_at":      gorm.Expr("NOW()"),
			}).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating store stats")
		}

		store.Plan = plan
		store.MaxLeads = maxLeads
		store.RemainingLeads = remaining
		updated = store
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// InsertAuditLog appends one audit trail entry.
func (r *Repository) InsertAuditLog(ctx context.Context, entry *models.AdminAuditLog) error {
	if err := r.DB(ctx).Create(entry).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing audit log")
	}
	return nil
}

// ListAuditLogs returns the newest audit entries for a store.
func (r *Repository) ListAuditLogs(ctx context.Context, storeID uuid.UUID, limit int) ([]models.AdminAuditLog, error) {
	var rows []models.AdminAuditLog
	err := r.DB(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing audit logs")
	}
	return rows, nil
}
