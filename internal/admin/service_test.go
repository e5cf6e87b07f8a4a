package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/memohit/boostacart-backend/pkg/config"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	"github.com/memohit/boostacart-backend/pkg/enums"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/security"
)

type stubAdminStore struct {
	store     *models.Store
	stats     []models.StoreLeadStats
	planCalls []enums.Plan
	audits    []*models.AdminAuditLog
	auditErr  error
	auditRows []models.AdminAuditLog
	lastLimit int
}

func (s *stubAdminStore) FindStore(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	if s.store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return s.store, nil
}

func (s *stubAdminStore) ListStoreStats(ctx context.Context) ([]models.StoreLeadStats, error) {
	return s.stats, nil
}

func (s *stubAdminStore) UpdatePlan(ctx context.Context, storeID uuid.UUID, plan enums.Plan) (*models.Store, error) {
	s.planCalls = append(s.planCalls, plan)
	updated := *s.store
	updated.Plan = plan
	updated.MaxLeads = plan.MaxLeads()
	remaining := updated.MaxLeads - updated.LeadsThisMonth
	if remaining < 0 {
		remaining = 0
	}
	updated.RemainingLeads = remaining
	return &updated, nil
}

func (s *stubAdminStore) InsertAuditLog(ctx context.Context, entry *models.AdminAuditLog) error {
	if s.auditErr != nil {
		return s.auditErr
	}
	s.audits = append(s.audits, entry)
	return nil
}

func (s *stubAdminStore) ListAuditLogs(ctx context.Context, storeID uuid.UUID, limit int) ([]models.AdminAuditLog, error) {
	s.lastLimit = limit
	return s.auditRows, nil
}

type stubThrottle struct {
	counts map[string]int
	ttls   map[string]time.Duration
	dels   []string
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{counts: map[string]int{}, ttls: map[string]time.Duration{}}
}

func (s *stubThrottle) Get(ctx context.Context, key string) (string, error) {
	count, ok := s.counts[key]
	if !ok {
		return "", goredis.Nil
	}
	return fmt.Sprint(count), nil
}

func (s *stubThrottle) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.counts[key]++
	s.ttls[key] = ttl
	return int64(s.counts[key]), nil
}

func (s *stubThrottle) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.ttls[key], nil
}

func (s *stubThrottle) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.counts, key)
		s.dels = append(s.dels, key)
	}
	return nil
}

func (s *stubThrottle) LoginThrottleKey(ip string) string {
	return "bc:login_attempts:" + ip
}

func testAdminService(t *testing.T, repo *stubAdminStore, throttle *stubThrottle) Service {
	t.Helper()

	hash, err := security.HashPassword("correct horse", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	cfg := config.AdminConfig{
		Username:          "admin",
		PasswordHash:      hash,
		SessionSecret:     "test-secret",
		SessionIssuer:     "boostacart",
		SessionTTLMinutes: 60,
	}
	policy := config.ThrottleConfig{
		LoginWindow:  15 * time.Minute,
		LoginIPLimit: 5,
	}

	var throttleStore loginThrottleStore
	if throttle != nil {
		throttleStore = throttle
	}
	svc, err := NewService(repo, throttleStore, cfg, policy, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestLoginSuccess(t *testing.T) {
	throttle := newStubThrottle()
	svc := testAdminService(t, &stubAdminStore{}, throttle)

	result, err := svc.Login(context.Background(), LoginInput{
		Username: "admin",
		Password: "correct horse",
		IP:       "203.0.113.9",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected session token")
	}
	if result.ExpiresIn != time.Hour {
		t.Fatalf("unexpected ttl %v", result.ExpiresIn)
	}
}

func TestLoginWrongPasswordCountsFailure(t *testing.T) {
	throttle := newStubThrottle()
	svc := testAdminService(t, &stubAdminStore{}, throttle)

	_, err := svc.Login(context.Background(), LoginInput{
		Username: "admin",
		Password: "wrong",
		IP:       "203.0.113.9",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if throttle.counts["bc:login_attempts:203.0.113.9"] != 1 {
		t.Fatalf("expected one recorded failure")
	}
}

func TestLoginLockoutAfterLimit(t *testing.T) {
	throttle := newStubThrottle()
	svc := testAdminService(t, &stubAdminStore{}, throttle)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.Login(ctx, LoginInput{Username: "admin", Password: "wrong", IP: "203.0.113.9"})
	}

	_, err := svc.Login(ctx, LoginInput{Username: "admin", Password: "correct horse", IP: "203.0.113.9"})
	if err == nil {
		t.Fatalf("expected lockout")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit code, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["remainingSeconds"] == nil {
		t.Fatalf("expected retry metadata, got %v", typed.Details())
	}
}

func TestLoginSuccessClearsFailures(t *testing.T) {
	throttle := newStubThrottle()
	svc := testAdminService(t, &stubAdminStore{}, throttle)
	ctx := context.Background()

	svc.Login(ctx, LoginInput{Username: "admin", Password: "wrong", IP: "203.0.113.9"})
	if _, err := svc.Login(ctx, LoginInput{Username: "admin", Password: "correct horse", IP: "203.0.113.9"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if len(throttle.dels) == 0 {
		t.Fatalf("expected failure counter cleared")
	}
}

func TestChangePlanWritesAudit(t *testing.T) {
	store := &models.Store{
		ID:             uuid.New(),
		Name:           "Demo",
		Plan:           enums.PlanFree,
		MaxLeads:       50,
		LeadsThisMonth: 10,
	}
	repo := &stubAdminStore{store: store}
	svc := testAdminService(t, repo, nil)

	result, err := svc.ChangePlan(context.Background(), ChangePlanInput{
		StoreID:   store.ID,
		NewPlan:   "Starter",
		ChangedBy: "admin",
		IPAddress: "203.0.113.9",
		UserAgent: "console",
	})
	if err != nil {
		t.Fatalf("change plan failed: %v", err)
	}
	if result.OldPlan != "Free" || result.NewPlan != "Starter" {
		t.Fatalf("unexpected transition %s -> %s", result.OldPlan, result.NewPlan)
	}
	if result.MaxLeads != 600 || result.RemainingLeads != 590 {
		t.Fatalf("unexpected allowance %d/%d", result.MaxLeads, result.RemainingLeads)
	}

	if len(repo.audits) != 1 {
		t.Fatalf("expected one audit entry")
	}
	audit := repo.audits[0]
	if audit.ActionType != enums.AuditActionPlanChange {
		t.Fatalf("unexpected action %s", audit.ActionType)
	}
	if audit.OldValue != "Free" || audit.NewValue != "Starter" {
		t.Fatalf("unexpected audit values %s -> %s", audit.OldValue, audit.NewValue)
	}
	if audit.IPAddress != "203.0.113.9" || audit.UserAgent != "console" {
		t.Fatalf("audit missing request context")
	}
}

func TestChangePlanSurvivesAuditFailure(t *testing.T) {
	store := &models.Store{ID: uuid.New(), Name: "Demo", Plan: enums.PlanFree, MaxLeads: 50}
	repo := &stubAdminStore{store: store, auditErr: pkgerrors.New(pkgerrors.CodeDependency, "db down")}
	svc := testAdminService(t, repo, nil)

	result, err := svc.ChangePlan(context.Background(), ChangePlanInput{StoreID: store.ID, NewPlan: "Pro"})
	if err != nil {
		t.Fatalf("plan change should survive audit failure: %v", err)
	}
	if result.NewPlan != "Pro" {
		t.Fatalf("unexpected plan %s", result.NewPlan)
	}
}

func TestChangePlanSamePlanRepairsCap(t *testing.T) {
	// the stored cap drifted from the plan table; a same-plan change
	// must still recompute it, without writing an audit entry
	store := &models.Store{ID: uuid.New(), Name: "Demo", Plan: enums.PlanFree, MaxLeads: 25, RemainingLeads: 10, LeadsThisMonth: 15}
	repo := &stubAdminStore{store: store}
	svc := testAdminService(t, repo, nil)

	result, err := svc.ChangePlan(context.Background(), ChangePlanInput{StoreID: store.ID, NewPlan: "Free"})
	if err != nil {
		t.Fatalf("same-plan change failed: %v", err)
	}
	if len(repo.planCalls) != 1 {
		t.Fatalf("same-plan change must still run the update, had %d calls", len(repo.planCalls))
	}
	if len(repo.audits) != 0 {
		t.Fatalf("same-plan change should not be audited")
	}
	if result.MaxLeads != enums.PlanFree.MaxLeads() {
		t.Fatalf("cap not repaired, got %d", result.MaxLeads)
	}
	if result.RemainingLeads != enums.PlanFree.MaxLeads()-15 {
		t.Fatalf("remaining not recomputed, got %d", result.RemainingLeads)
	}
}

func TestChangePlanRejectsUnknownPlan(t *testing.T) {
	repo := &stubAdminStore{store: &models.Store{ID: uuid.New(), Plan: enums.PlanFree}}
	svc := testAdminService(t, repo, nil)

	_, err := svc.ChangePlan(context.Background(), ChangePlanInput{StoreID: uuid.New(), NewPlan: "Platinum"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuditLogsAppliesLimitBounds(t *testing.T) {
	storeID := uuid.New()
	repo := &stubAdminStore{auditRows: []models.AdminAuditLog{
		{ID: uuid.New(), StoreID: storeID, ActionType: enums.AuditActionPlanChange, OldValue: "Free", NewValue: "Pro", ChangedBy: "ops"},
	}}
	svc := testAdminService(t, repo, nil)

	rows, err := svc.AuditLogs(context.Background(), storeID, 0)
	if err != nil {
		t.Fatalf("audit logs failed: %v", err)
	}
	if repo.lastLimit != 50 {
		t.Fatalf("zero limit must fall back to the default, got %d", repo.lastLimit)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0].ActionType != "plan_change" || rows[0].NewValue != "Pro" {
		t.Fatalf("unexpected row %+v", rows[0])
	}

	if _, err := svc.AuditLogs(context.Background(), storeID, 10_000); err != nil {
		t.Fatalf("oversize limit failed: %v", err)
	}
	if repo.lastLimit != 200 {
		t.Fatalf("limit must clamp to the cap, got %d", repo.lastLimit)
	}
}
