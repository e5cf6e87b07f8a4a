package savedleads

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/memohit/boostacart-backend/internal/repo"
	"github.com/memohit/boostacart-backend/pkg/db"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
)

// Repository persists saved-lead copies.
type Repository struct {
	repo.Base
	client *db.Client
}

// NewRepository constructs a saved-lead repository.
func NewRepository(client *db.Client) *Repository {
	return &Repository{Base: repo.NewBase(client.DB()), client: client}
}

// FindLead loads the source lead scoped to the store.
func (r *Repository) FindLead(ctx context.Context, storeID, leadID uuid.UUID) (*models.Lead, error) {
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

// CreateCopy inserts the saved copy and flags the source lead in one
// transaction.
func (r *Repository) CreateCopy(ctx context.Context, saved *models.SavedLead) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(saved).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving lead copy")
		}
		if err := tx.
			Model(&models.Lead{}).
			Where("id = ?", saved.LeadID).
			Update("is_saved", true).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "flagging lead")
		}
		return nil
	})
}

// FindByLeadID returns the saved copy for a source lead, if one exists.
func (r *Repository) FindByLeadID(ctx context.Context, storeID, leadID uuid.UUID) (*models.SavedLead, error) {
	var saved models.SavedLead
	err := r.DB(ctx).Where("lead_id = ? AND store_id = ?", leadID, storeID).First(&saved).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "saved lead not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading saved lead")
	}
	return &saved, nil
}

// ListByStore returns all saved copies for a store, newest save first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.SavedLead, error) {
	var rows []models.SavedLead
	err := r.DB(ctx).
		Where("store_id = ?", storeID).
		Order("saved_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing saved leads")
	}
	return rows, nil
}

// DeleteCopy removes the saved copy and unflags the source lead in one
// transaction. The source lead itself is never deleted.
func (r *Repository) DeleteCopy(ctx context.Context, storeID, savedID uuid.UUID) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var saved models.SavedLead
		err := tx.Where("id = ? AND store_id = ?", savedID, storeID).First(&saved).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "saved lead not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading saved lead")
		}

		if err := tx.Delete(&saved).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting saved lead")
		}
		if err := tx.
			Model(&models.Lead{}).
			Where("id = ?", saved.LeadID).
			Update("is_saved", false).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unflagging lead")
		}
		return nil
	})
}
