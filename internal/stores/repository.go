package stores

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

// Repository persists store rows.
type Repository struct {
	repo.Base
}

// NewRepository constructs a store repository.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

// FindByID loads a store by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
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

// FindByDomain loads a store by its shopify domain.
func (r *Repository) FindByDomain(ctx context.Context, domain string) (*models.Store, error) {
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

// FindByUserID loads the store owned by the given user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := r.DB(ctx).Where("user_id = ?", userID).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading store")
	}
	return &store, nil
}

// Create inserts a new store row.
func (r *Repository) Create(ctx context.Context, store *models.Store) (*models.Store, error) {
	if err := r.DB(ctx).Create(store).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "store already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating store")
	}
	return store, nil
}

// MarkInstalled flips the installation flag once the widget has been seen.
func (r *Repository) MarkInstalled(ctx context.Context, id uuid.UUID) error {
	err := r.DB(ctx).
		Model(&models.Store{}).
		Where("id = ? AND installed = ?", id, false).
		Update("installed", true).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marking store installed")
	}
	return nil
}
