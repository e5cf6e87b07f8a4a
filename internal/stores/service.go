package stores

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/pkg/db/models"
	"github.com/memohit/boostacart-backend/pkg/enums"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

// Service exposes store provisioning operations.
type Service interface {
	EnsureStore(ctx context.Context, input EnsureStoreInput) (*StoreDTO, error)
	GetByDomain(ctx context.Context, domain string) (*models.Store, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// EnsureStoreInput holds the validated signup payload.
type EnsureStoreInput struct {
	UserID        uuid.UUID
	Name          string
	Domain        string
	ShopifyDomain string
	StoreSlug     *string
}

// StoreDTO is the store payload returned to the dashboard.
type StoreDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Domain         string    `json:"domain"`
	ShopifyDomain  string    `json:"shopify_domain"`
	StoreSlug      *string   `json:"store_slug,omitempty"`
	Plan           string    `json:"plan"`
	MaxLeads       int       `json:"max_leads"`
	RemainingLeads int       `json:"remaining_leads"`
	TotalLeads     int       `json:"total_leads"`
	LeadsThisMonth int       `json:"leads_this_month"`
	Installed      bool      `json:"installed"`
}

type storeStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindByDomain(ctx context.Context, domain string) (*models.Store, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Store, error)
	Create(ctx context.Context, store *models.Store) (*models.Store, error)
}

type service struct {
	repo storeStore
	logg *logger.Logger
}

// NewService constructs a store service instance.
func NewService(repo storeStore, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// EnsureStore returns the caller's store, creating it with free-plan defaults
// on first signup. The operation is safe to repeat.
func (s *service) EnsureStore(ctx context.Context, input EnsureStoreInput) (*StoreDTO, error) {
	domain := normalizeDomain(input.ShopifyDomain)
	if domain == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopify domain is required")
	}

	if existing, err := s.repo.FindByUserID(ctx, input.UserID); err == nil {
		return toStoreDTO(existing), nil
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	if _, err := s.repo.FindByDomain(ctx, domain); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "store already registered for this domain")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	freeCap := enums.PlanFree.MaxLeads()
	store := &models.Store{
		ID:             uuid.New(),
		UserID:         input.UserID,
		Name:           strings.TrimSpace(input.Name),
		Domain:         strings.TrimSpace(input.Domain),
		ShopifyDomain:  domain,
		StoreSlug:      input.StoreSlug,
		Plan:           enums.PlanFree,
		MaxLeads:       freeCap,
		RemainingLeads: freeCap,
		TotalLeads:     0,
		LeadsThisMonth: 0,
		Installed:      false,
	}

	created, err := s.repo.Create(ctx, store)
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithStoreID(ctx, created.ID.String()), "store.provisioned")
	}

	return toStoreDTO(created), nil
}

func (s *service) GetByDomain(ctx context.Context, domain string) (*models.Store, error) {
	return s.repo.FindByDomain(ctx, normalizeDomain(domain))
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	return s.repo.FindByID(ctx, id)
}

func toStoreDTO(store *models.Store) *StoreDTO {
	return &StoreDTO{
		ID:             store.ID,
		Name:           store.Name,
		Domain:         store.Domain,
		ShopifyDomain:  store.ShopifyDomain,
		StoreSlug:      store.StoreSlug,
		Plan:           store.Plan.String(),
		MaxLeads:       store.MaxLeads,
		RemainingLeads: store.RemainingLeads,
		TotalLeads:     store.TotalLeads,
		LeadsThisMonth: store.LeadsThisMonth,
		Installed:      store.Installed,
	}
}

func normalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
