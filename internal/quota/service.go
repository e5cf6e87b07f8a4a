package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/pkg/db/models"
	"github.com/memohit/boostacart-backend/pkg/enums"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

// Snapshot is the point-in-time usage picture for one store.
type Snapshot struct {
	StoreID        uuid.UUID  `json:"store_id"`
	StoreName      string     `json:"store_name"`
	ShopifyDomain  string     `json:"shopify_domain"`
	Plan           enums.Plan `json:"plan"`
	MaxLeads       int        `json:"max_leads"`
	CurrentUsage   int        `json:"current_usage"`
	RemainingLeads int        `json:"remaining_leads"`
	TotalLeads     int        `json:"total_leads"`
	LeadsToday     int        `json:"leads_today"`
	AtLimit        bool       `json:"at_limit"`
	Unlimited      bool       `json:"unlimited"`
}

// Service computes quota snapshots.
type Service interface {
	SnapshotByDomain(ctx context.Context, domain string) (*Snapshot, error)
	SnapshotForStore(ctx context.Context, store *models.Store) (*Snapshot, error)
}

type usageReader interface {
	FindStoreByDomain(ctx context.Context, domain string) (*models.Store, error)
	CountLeadsSince(ctx context.Context, storeID uuid.UUID, since time.Time) (int, error)
	CountLeadsTotal(ctx context.Context, storeID uuid.UUID) (int, error)
	UpdateMaxLeads(ctx context.Context, storeID uuid.UUID, maxLeads int) error
	UpsertStats(ctx context.Context, stats *models.StoreLeadStats) error
}

type service struct {
	repo usageReader
	logg *logger.Logger
	now  func() time.Time
}

// NewService constructs the quota snapshot provider.
func NewService(repo usageReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quota repository required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

// SnapshotByDomain loads the store by shopify domain and computes its snapshot.
func (s *service) SnapshotByDomain(ctx context.Context, domain string) (*Snapshot, error) {
	store, err := s.repo.FindStoreByDomain(ctx, domain)
	if err != nil {
		return nil, err
	}
	return s.SnapshotForStore(ctx, store)
}

// SnapshotForStore recounts usage for the current month and repairs the
// cached allowance when the plan mapping and the store row disagree.
func (s *service) SnapshotForStore(ctx context.Context, store *models.Store) (*Snapshot, error) {
	now := s.now()
	monthStart := MonthStart(now)

	usage, err := s.repo.CountLeadsSince(ctx, store.ID, monthStart)
	if err != nil {
		// the denormalized counter is the fallback when the recount fails
		if s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"store_id": store.ID.String(),
				"error":    err.Error(),
			}), "quota.recount.failed")
		}
		usage = store.LeadsThisMonth
	}

	maxLeads := store.Plan.MaxLeads()
	if store.MaxLeads != maxLeads {
		if healErr := s.repo.UpdateMaxLeads(ctx, store.ID, maxLeads); healErr != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"store_id": store.ID.String(),
				"error":    healErr.Error(),
			}), "quota.self_heal.failed")
		}
	}

	remaining := maxLeads - usage
	if remaining < 0 {
		remaining = 0
	}

	total := store.TotalLeads
	if recounted, err := s.repo.CountLeadsTotal(ctx, store.ID); err == nil {
		total = recounted
	}

	leadsToday, err := s.repo.CountLeadsSince(ctx, store.ID, DayStart(now))
	if err != nil {
		leadsToday = 0
	}

	snap := &Snapshot{
		StoreID:        store.ID,
		StoreName:      store.Name,
		ShopifyDomain:  store.ShopifyDomain,
		Plan:           store.Plan,
		MaxLeads:       maxLeads,
		CurrentUsage:   usage,
		RemainingLeads: remaining,
		TotalLeads:     total,
		LeadsToday:     leadsToday,
		AtLimit:        !store.Plan.Unlimited() && usage >= maxLeads,
		Unlimited:      store.Plan.Unlimited(),
	}

	s.refreshStats(ctx, snap)

	return snap, nil
}

// refreshStats pushes the snapshot into store_lead_stats. Failures are logged
// and swallowed: the table is a read cache, never an input.
func (s *service) refreshStats(ctx context.Context, snap *Snapshot) {
	stats := &models.StoreLeadStats{
		StoreID:        snap.StoreID,
		StoreName:      snap.StoreName,
		ShopifyDomain:  snap.ShopifyDomain,
		Plan:           snap.Plan,
		MaxLeads:       snap.MaxLeads,
		RemainingLeads: snap.RemainingLeads,
		LeadsThisMonth: snap.CurrentUsage,
		LeadsToday:     snap.LeadsToday,
		TotalLeads:     snap.TotalLeads,
		UpdatedAt:      s.now(),
	}
	if err := s.repo.UpsertStats(ctx, stats); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"store_id": snap.StoreID.String(),
			"error":    err.Error(),
		}), "quota.stats_refresh.failed")
	}
}
