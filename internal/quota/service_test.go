package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/pkg/db/models"
	"github.com/memohit/boostacart-backend/pkg/enums"
)

type stubUsageReader struct {
	store          *models.Store
	findErr        error
	monthCount     int
	totalCount     int
	countErr       error
	maxLeadUpdates []int
	statsUpserts   []*models.StoreLeadStats
}

func (s *stubUsageReader) FindStoreByDomain(ctx context.Context, domain string) (*models.Store, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.store, nil
}

func (s *stubUsageReader) CountLeadsSince(ctx context.Context, storeID uuid.UUID, since time.Time) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	if since.Hour() == 0 && since.Day() != 1 {
		return 0, nil
	}
	return s.monthCount, nil
}

func (s *stubUsageReader) CountLeadsTotal(ctx context.Context, storeID uuid.UUID) (int, error) {
	return s.totalCount, nil
}

func (s *stubUsageReader) UpdateMaxLeads(ctx context.Context, storeID uuid.UUID, maxLeads int) error {
	s.maxLeadUpdates = append(s.maxLeadUpdates, maxLeads)
	return nil
}

func (s *stubUsageReader) UpsertStats(ctx context.Context, stats *models.StoreLeadStats) error {
	s.statsUpserts = append(s.statsUpserts, stats)
	return nil
}

func testStore(plan enums.Plan, maxLeads int) *models.Store {
	return &models.Store{
		ID:             uuid.New(),
		Name:           "Demo Store",
		ShopifyDomain:  "demo.myshopify.com",
		Plan:           plan,
		MaxLeads:       maxLeads,
		LeadsThisMonth: 3,
		TotalLeads:     40,
	}
}

func TestSnapshotRecountsUsage(t *testing.T) {
	reader := &stubUsageReader{
		store:      testStore(enums.PlanFree, 50),
		monthCount: 12,
		totalCount: 80,
	}
	svc, err := NewService(reader, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	snap, err := svc.SnapshotByDomain(context.Background(), "demo.myshopify.com")
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snap.CurrentUsage != 12 {
		t.Fatalf("expected recounted usage 12, got %d", snap.CurrentUsage)
	}
	if snap.RemainingLeads != 38 {
		t.Fatalf("expected 38 remaining, got %d", snap.RemainingLeads)
	}
	if snap.TotalLeads != 80 {
		t.Fatalf("expected recounted total 80, got %d", snap.TotalLeads)
	}
	if snap.AtLimit {
		t.Fatalf("store under limit should not be at limit")
	}
	if len(reader.statsUpserts) != 1 {
		t.Fatalf("expected one stats refresh, got %d", len(reader.statsUpserts))
	}
}

func TestSnapshotFallsBackToCachedCounter(t *testing.T) {
	reader := &stubUsageReader{
		store:    testStore(enums.PlanFree, 50),
		countErr: errors.New("db down"),
	}
	svc, _ := NewService(reader, nil)

	snap, err := svc.SnapshotByDomain(context.Background(), "demo.myshopify.com")
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snap.CurrentUsage != 3 {
		t.Fatalf("expected cached usage 3, got %d", snap.CurrentUsage)
	}
}

func TestSnapshotSelfHealsMaxLeads(t *testing.T) {
	reader := &stubUsageReader{
		store:      testStore(enums.PlanStarter, 50),
		monthCount: 10,
	}
	svc, _ := NewService(reader, nil)

	snap, err := svc.SnapshotByDomain(context.Background(), "demo.myshopify.com")
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snap.MaxLeads != 600 {
		t.Fatalf("expected plan allowance 600, got %d", snap.MaxLeads)
	}
	if len(reader.maxLeadUpdates) != 1 || reader.maxLeadUpdates[0] != 600 {
		t.Fatalf("expected self-heal to 600, got %v", reader.maxLeadUpdates)
	}
}

func TestSnapshotAtLimit(t *testing.T) {
	reader := &stubUsageReader{
		store:      testStore(enums.PlanFree, 50),
		monthCount: 50,
	}
	svc, _ := NewService(reader, nil)

	snap, err := svc.SnapshotByDomain(context.Background(), "demo.myshopify.com")
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if !snap.AtLimit {
		t.Fatalf("usage at allowance should flag the limit")
	}
	if snap.RemainingLeads != 0 {
		t.Fatalf("expected zero remaining, got %d", snap.RemainingLeads)
	}
}

func TestSnapshotProNeverAtLimit(t *testing.T) {
	reader := &stubUsageReader{
		store:      testStore(enums.PlanPro, enums.ProLeadSentinel),
		monthCount: 100000,
	}
	svc, _ := NewService(reader, nil)

	snap, err := svc.SnapshotByDomain(context.Background(), "demo.myshopify.com")
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snap.AtLimit {
		t.Fatalf("pro plan should never hit the limit")
	}
	if !snap.Unlimited {
		t.Fatalf("pro plan should report unlimited")
	}
}
