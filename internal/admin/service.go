package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/memohit/boostacart-backend/pkg/auth"
	"github.com/memohit/boostacart-backend/pkg/config"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	"github.com/memohit/boostacart-backend/pkg/enums"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
	"github.com/memohit/boostacart-backend/pkg/security"
)

// Service exposes the operator console operations.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	ListStores(ctx context.Context) ([]StoreStatsDTO, error)
	ChangePlan(ctx context.Context, input ChangePlanInput) (*PlanChangeDTO, error)
	AuditLogs(ctx context.Context, storeID uuid.UUID, limit int) ([]AuditLogDTO, error)
}

// LoginInput carries one login attempt.
type LoginInput struct {
	Username string
	Password string
	IP       string
}

// LoginResult carries the minted session token and its lifetime.
type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
}

// StoreStatsDTO is one row of the operator's store list.
type StoreStatsDTO struct {
	StoreID        uuid.UUID `json:"store_id"`
	StoreName      string    `json:"store_name"`
	ShopifyDomain  string    `json:"shopify_domain"`
	Plan           string    `json:"plan"`
	MaxLeads       int       `json:"max_leads"`
	RemainingLeads int       `json:"remaining_leads"`
	LeadsThisMonth int       `json:"leads_this_month"`
	LeadsToday     int       `json:"leads_today"`
	TotalLeads     int       `json:"total_leads"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ChangePlanInput carries a plan mutation plus the audit context.
type ChangePlanInput struct {
	StoreID   uuid.UUID
	NewPlan   string
	ChangedBy string
	IPAddress string
	UserAgent string
}

// AuditLogDTO is one audit trail entry as served to the console.
type AuditLogDTO struct {
	ID         uuid.UUID `json:"id"`
	StoreID    uuid.UUID `json:"store_id"`
	StoreName  string    `json:"store_name"`
	ActionType string    `json:"action_type"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	ChangedBy  string    `json:"changed_by"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
}

// PlanChangeDTO reports the applied change.
type PlanChangeDTO struct {
	StoreID        uuid.UUID `json:"store_id"`
	OldPlan        string    `json:"old_plan"`
	NewPlan        string    `json:"new_plan"`
	MaxLeads       int       `json:"max_leads"`
	RemainingLeads int       `json:"remaining_leads"`
}

type adminStore interface {
	FindStore(ctx context.Context, id uuid.UUID) (*models.Store, error)
	ListStoreStats(ctx context.Context) ([]models.StoreLeadStats, error)
	UpdatePlan(ctx context.Context, storeID uuid.UUID, plan enums.Plan) (*models.Store, error)
	InsertAuditLog(ctx context.Context, entry *models.AdminAuditLog) error
	ListAuditLogs(ctx context.Context, storeID uuid.UUID, limit int) ([]models.AdminAuditLog, error)
}

type loginThrottleStore interface {
	Get(ctx context.Context, key string) (string, error)
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Del(ctx context.Context, keys ...string) error
	LoginThrottleKey(ip string) string
}

type service struct {
	repo     adminStore
	throttle loginThrottleStore
	cfg      config.AdminConfig
	policy   config.ThrottleConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs an admin service instance.
func NewService(repo adminStore, throttle loginThrottleStore, cfg config.AdminConfig, policy config.ThrottleConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	return &service{
		repo:     repo,
		throttle: throttle,
		cfg:      cfg,
		policy:   policy,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Login verifies the operator credential and mints a session token. Failed
// attempts count against a per-IP lockout window.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := s.checkLockout(ctx, input.IP); err != nil {
		return nil, err
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.cfg.Username)) == 1
	passwordOK := false
	if s.cfg.PasswordHash != "" {
		ok, err := security.VerifyPassword(input.Password, s.cfg.PasswordHash)
		if err == nil {
			passwordOK = ok
		}
	}

	if !usernameOK || !passwordOK {
		s.recordFailure(ctx, input.IP)
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	s.clearFailures(ctx, input.IP)

	token, err := auth.MintAdminSession(s.cfg, s.now(), s.cfg.Username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting session")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{"admin_user": s.cfg.Username}), "admin.login.success")
	}

	return &LoginResult{Token: token, ExpiresIn: s.cfg.SessionTTL()}, nil
}

func (s *service) checkLockout(ctx context.Context, ip string) error {
	if s.throttle == nil || ip == "" || s.policy.LoginIPLimit <= 0 {
		return nil
	}

	key := s.throttle.LoginThrottleKey(ip)
	raw, err := s.throttle.Get(ctx, key)
	if err != nil {
		// a missing counter or an unreachable redis both mean no lockout
		return nil
	}

	var count int
	fmt.Sscanf(raw, "%d", &count)
	if count < s.policy.LoginIPLimit {
		return nil
	}

	retryAfter := s.policy.LoginWindow
	if ttl, err := s.throttle.TTL(ctx, key); err == nil && ttl > 0 {
		retryAfter = ttl
	}

	return pkgerrors.New(pkgerrors.CodeRateLimit, "too many failed attempts").
		WithDetails(map[string]any{
			"remainingSeconds": int(retryAfter.Seconds()),
		})
}

func (s *service) recordFailure(ctx context.Context, ip string) {
	if s.throttle == nil || ip == "" {
		return
	}
	key := s.throttle.LoginThrottleKey(ip)
	if _, err := s.throttle.IncrWithTTL(ctx, key, s.policy.LoginWindow); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"error": err.Error()}), "admin.login.throttle_write_failed")
	}
}

func (s *service) clearFailures(ctx context.Context, ip string) {
	if s.throttle == nil || ip == "" {
		return
	}
	if err := s.throttle.Del(ctx, s.throttle.LoginThrottleKey(ip)); err != nil && err != goredis.Nil && s.logg != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"error": err.Error()}), "admin.login.throttle_clear_failed")
	}
}

// ListStores returns the usage row for every store.
func (s *service) ListStores(ctx context.Context) ([]StoreStatsDTO, error) {
	rows, err := s.repo.ListStoreStats(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StoreStatsDTO, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		out = append(out, StoreStatsDTO{
			StoreID:        row.StoreID,
			StoreName:      row.StoreName,
			ShopifyDomain:  row.ShopifyDomain,
			Plan:           row.Plan.String(),
			MaxLeads:       row.MaxLeads,
			RemainingLeads: row.RemainingLeads,
			LeadsThisMonth: row.LeadsThisMonth,
			LeadsToday:     row.LeadsToday,
			TotalLeads:     row.TotalLeads,
			UpdatedAt:      row.UpdatedAt,
		})
	}
	return out, nil
}

// ChangePlan applies the plan mutation and appends its audit trail entry.
// The audit write is best effort: a failure logs but never rolls back the
// plan change.
func (s *service) ChangePlan(ctx context.Context, input ChangePlanInput) (*PlanChangeDTO, error) {
	plan, err := enums.ParsePlan(strings.TrimSpace(input.NewPlan))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown plan").
			WithDetails(map[string]any{"plan": input.NewPlan, "allowed": enums.Plans()})
	}

	store, err := s.repo.FindStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	oldPlan := store.Plan

	// a same-plan request still runs the update so a stale stored cap
	// gets recomputed from the plan table
	updated, err := s.repo.UpdatePlan(ctx, input.StoreID, plan)
	if err != nil {
		return nil, err
	}

	if oldPlan != plan {
		changedBy := input.ChangedBy
		if changedBy == "" {
			changedBy = "admin"
		}

		entry := &models.AdminAuditLog{
			ID:         uuid.New(),
			StoreID:    updated.ID,
			StoreName:  updated.Name,
			ActionType: enums.AuditActionPlanChange,
			OldValue:   oldPlan.String(),
			NewValue:   plan.String(),
			ChangedBy:  changedBy,
			IPAddress:  input.IPAddress,
			UserAgent:  input.UserAgent,
			CreatedAt:  s.now(),
		}
		if err := s.repo.InsertAuditLog(ctx, entry); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"store_id": updated.ID.String(),
				"error":    err.Error(),
			}), "admin.audit_write.failed")
		}

		if s.logg != nil {
			s.logg.Info(s.logg.WithFields(ctx, map[string]any{
				"store_id": updated.ID.String(),
				"old_plan": oldPlan.String(),
				"new_plan": plan.String(),
			}), "admin.plan.changed")
		}
	}

	return &PlanChangeDTO{
		StoreID:        updated.ID,
		OldPlan:        oldPlan.String(),
		NewPlan:        plan.String(),
		MaxLeads:       updated.MaxLeads,
		RemainingLeads: updated.RemainingLeads,
	}, nil
}

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AuditLogs returns the newest audit entries for one store.
func (s *service) AuditLogs(ctx context.Context, storeID uuid.UUID, limit int) ([]AuditLogDTO, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	rows, err := s.repo.ListAuditLogs(ctx, storeID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]AuditLogDTO, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		out = append(out, AuditLogDTO{
			ID:         row.ID,
			StoreID:    row.StoreID,
			StoreName:  row.StoreName,
			ActionType: string(row.ActionType),
			OldValue:   row.OldValue,
			NewValue:   row.NewValue,
			ChangedBy:  row.ChangedBy,
			IPAddress:  row.IPAddress,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}
