package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/internal/quota"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 365
	topProductCount   = 5
)

// Service exposes dashboard read models.
type Service interface {
	Overview(ctx context.Context, storeID uuid.UUID) (*OverviewDTO, error)
	LeadsByDay(ctx context.Context, storeID uuid.UUID, days int) ([]DayCountDTO, error)
	TopProducts(ctx context.Context, storeID uuid.UUID, days int) ([]ProductCountDTO, error)
}

// OverviewDTO is the dashboard's headline usage card.
type OverviewDTO struct {
	Plan           string `json:"plan"`
	MaxLeads       int    `json:"max_leads"`
	LeadsThisMonth int    `json:"leads_this_month"`
	RemainingLeads int    `json:"remaining_leads"`
	LeadsToday     int    `json:"leads_today"`
	TotalLeads     int    `json:"total_leads"`
	Unlimited      bool   `json:"unlimited"`
	AtLimit        bool   `json:"at_limit"`
}

// DayCountDTO is one day on the capture chart.
type DayCountDTO struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ProductCountDTO is one row of the top-products table.
type ProductCountDTO struct {
	ProductName string `json:"product_name"`
	Count       int    `json:"count"`
}

type aggregateReader interface {
	CountByDay(ctx context.Context, storeID uuid.UUID, since time.Time) ([]DayBucket, error)
	TopProducts(ctx context.Context, storeID uuid.UUID, since time.Time, limit int) ([]ProductBucket, error)
}

type storeLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type snapshotProvider interface {
	SnapshotForStore(ctx context.Context, store *models.Store) (*quota.Snapshot, error)
}

type service struct {
	repo      aggregateReader
	storeRepo storeLoader
	quota     snapshotProvider
	logg      *logger.Logger
	now       func() time.Time
}

// NewService constructs an analytics service instance.
func NewService(repo aggregateReader, storeRepo storeLoader, quotaSvc snapshotProvider, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	if storeRepo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if quotaSvc == nil {
		return nil, fmt.Errorf("quota service required")
	}
	return &service{
		repo:      repo,
		storeRepo: storeRepo,
		quota:     quotaSvc,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// Overview computes the headline usage numbers from a fresh quota snapshot.
func (s *service) Overview(ctx context.Context, storeID uuid.UUID) (*OverviewDTO, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	snap, err := s.quota.SnapshotForStore(ctx, store)
	if err != nil {
		return nil, err
	}

	return &OverviewDTO{
		Plan:           snap.Plan.String(),
		MaxLeads:       snap.MaxLeads,
		LeadsThisMonth: snap.CurrentUsage,
		RemainingLeads: snap.RemainingLeads,
		LeadsToday:     snap.LeadsToday,
		TotalLeads:     snap.TotalLeads,
		Unlimited:      snap.Unlimited,
		AtLimit:        snap.AtLimit,
	}, nil
}

// LeadsByDay returns per-day capture counts for the window, zero-filling days
// without any leads.
func (s *service) LeadsByDay(ctx context.Context, storeID uuid.UUID, days int) ([]DayCountDTO, error) {
	days = clampWindow(days)
	now := s.now()
	since := quota.DayStart(now).AddDate(0, 0, -(days - 1))

	buckets, err := s.repo.CountByDay(ctx, storeID, since)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(buckets))
	for _, b := range buckets {
		counts[b.Day.Format("2006-01-02")] = b.Count
	}

	out := make([]DayCountDTO, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		out = append(out, DayCountDTO{Date: day, Count: counts[day]})
	}
	return out, nil
}

// TopProducts ranks products by captured leads inside the window.
func (s *service) TopProducts(ctx context.Context, storeID uuid.UUID, days int) ([]ProductCountDTO, error) {
	days = clampWindow(days)
	since := quota.DayStart(s.now()).AddDate(0, 0, -(days - 1))

	buckets, err := s.repo.TopProducts(ctx, storeID, since, topProductCount)
	if err != nil {
		return nil, err
	}

	out := make([]ProductCountDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, ProductCountDTO{ProductName: b.ProductName, Count: b.Count})
	}
	return out, nil
}

func clampWindow(days int) int {
	if days <= 0 {
		return defaultWindowDays
	}
	if days > maxWindowDays {
		return maxWindowDays
	}
	return days
}
