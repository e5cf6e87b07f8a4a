package leads

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/memohit/boostacart-backend/internal/quota"
	"github.com/memohit/boostacart-backend/internal/repo"
	"github.com/memohit/boostacart-backend/pkg/db"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/pagination"
)

// Repository persists leads and runs the quota-gated insert.
type Repository struct {
	repo.Base
	client *db.Client
	now    func() time.Time
}

// NewRepository constructs a lead repository.
func NewRepository(client *db.Client) *Repository {
	return &Repository{
		Base:   repo.NewBase(client.DB()),
		client: client,
		now:    time.Now,
	}
}

// FindStoreByDomain loads a store by its shopify domain.
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

// CreateLeadWithQuota inserts the lead inside one transaction that locks the
// store row, recounts this month's leads and refuses the insert when the
// store is at its allowance. It returns the usage count after the insert.
func (r *Repository) CreateLeadWithQuota(ctx context.Context, store *models.Store, lead *models.Lead) (int, error) {
	now := r.now()
	monthStart := quota.MonthStart(now)
	maxLeads := store.Plan.MaxLeads()
	unlimited := store.Plan.Unlimited()

	var usageAfter int
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var locked models.Store
		if err := tx.
			Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			First(&locked, "id = ?", store.ID).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "locking store")
		}

		var count int64
		if err := tx.
			Model(&models.Lead{}).
			Where("store_id = ? AND created_at >= ?", store.ID, monthStart).
			Count(&count).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting leads")
		}
		usage := int(count)

		if !unlimited && usage >= maxLeads {
			return pkgerrors.New(pkgerrors.CodePlanLimit, "monthly lead limit reached").
				WithDetails(map[string]any{
					"currentUsage": usage,
					"maxAllowed":   maxLeads,
				})
		}

		if err := tx.Create(lead).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting lead")
		}

		usageAfter = usage + 1
		remaining := maxLeads - usageAfter
		if remaining < 0 {
			remaining = 0
		}

		if err := tx.
			Model(&models.Store{}).
			Where("id = ?", store.ID).
			Updates(map[string]any{
				"leads_this_month": usageAfter,
				"total_leads":      gorm.Expr("total_leads + 1"),
				"remaining_leads":  remaining,
				"updated_at":       now,
			}).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating counters")
		}

		return nil
	})
	if err != nil {
		return 0, err
	}
	return usageAfter, nil
}

// FindByID loads a lead scoped to a store.
func (r *Repository) FindByID(ctx context.Context, storeID, leadID uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	err := r.DB(ctx).Where("id = ? AND store_id = ?", leadID, storeID).First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading lead")
	}
	return &lead, nil
}

// ListByStore returns one newest-first page of leads.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID, params pagination.Params) ([]models.Lead, error) {
	query := r.DB(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if cursor, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	} else if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Lead
	if err := query.Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing leads")
	}
	return rows, nil
}

// ListAllByStore streams every lead for the store, oldest first.
func (r *Repository) ListAllByStore(ctx context.Context, storeID uuid.UUID) ([]models.Lead, error) {
	var rows []models.Lead
	err := r.DB(ctx).
		Where("store_id = ?", storeID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing leads")
	}
	return rows, nil
}

// SetSaved flips the is_saved flag on a lead.
func (r *Repository) SetSaved(ctx context.Context, storeID, leadID uuid.UUID, saved bool) error {
	result := r.DB(ctx).
		Model(&models.Lead{}).
		Where("id = ? AND store_id = ?", leadID, storeID).
		Update("is_saved", saved)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "updating lead")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
	}
	return nil
}
