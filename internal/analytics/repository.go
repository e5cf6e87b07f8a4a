package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/memohit/boostacart-backend/internal/repo"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
)

// Repository runs aggregate queries over captured leads.
type Repository struct {
	repo.Base
}

// NewRepository constructs an analytics repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// DayBucket is one day's lead count.
type DayBucket struct {
	Day   time.Time `gorm:"column:day"`
	Count int       `gorm:"column:count"`
}

// ProductBucket is one product's lead count.
type ProductBucket struct {
	ProductName string `gorm:"column:product_name"`
	Count       int    `gorm:"column:count"`
}

// CountByDay groups the store's leads per calendar day since the boundary.
func (r *Repository) CountByDay(ctx context.Context, storeID uuid.UUID, since time.Time) ([]DayBucket, error) {
	var rows []DayBucket
	err := r.DB(ctx).
		Table("leads").
		Select("date_trunc('day', created_at) AS day, COUNT(*) AS count").
		Where("store_id = ? AND created_at >= ?", storeID, since).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grouping leads by day")
	}
	return rows, nil
}

// TopProducts returns the products with the most captured leads.
func (r *Repository) TopProducts(ctx context.Context, storeID uuid.UUID, since time.Time, limit int) ([]ProductBucket, error) {
	var rows []ProductBucket
	err := r.DB(ctx).
		Table("leads").
		Select("product_name, COUNT(*) AS count").
		Where("store_id = ? AND created_at >= ?", storeID, since).
		Group("product_name").
		Order("count DESC, product_name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ranking products")
	}
	return rows, nil
}
