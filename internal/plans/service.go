package plans

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/memohit/boostacart-backend/pkg/db/models"
	"github.com/memohit/boostacart-backend/pkg/enums"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

// Service exposes the public plan catalog.
type Service interface {
	List(ctx context.Context) ([]PlanDTO, error)
}

// PlanDTO is one pricing card.
type PlanDTO struct {
	ID           string          `json:"id"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	CurrencyCode string          `json:"currency_code"`
	MaxLeads     int             `json:"max_leads"`
	Unlimited    bool            `json:"unlimited"`
	Features     []string        `json:"features"`
	IsDefault    bool            `json:"is_default"`
}

type catalogReader interface {
	ListAll(ctx context.Context) ([]models.PlanCatalogEntry, error)
}

type service struct {
	repo catalogReader
	logg *logger.Logger
}

// NewService constructs a plan catalog service instance.
func NewService(repo catalogReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("plan repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// List returns the catalog. An empty table falls back to the built-in tiers
// so the pricing page never renders blank.
func (s *service) List(ctx context.Context) ([]PlanDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return builtinCatalog(), nil
	}

	out := make([]PlanDTO, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		out = append(out, PlanDTO{
			ID:           row.ID.String(),
			MonthlyPrice: row.MonthlyPrice,
			CurrencyCode: row.CurrencyCode,
			MaxLeads:     row.MaxLeads,
			Unlimited:    row.MaxLeads >= enums.ProLeadSentinel,
			Features:     append([]string(nil), row.Features...),
			IsDefault:    row.IsDefault,
		})
	}
	return out, nil
}

func builtinCatalog() []PlanDTO {
	return []PlanDTO{
		{
			ID:           enums.PlanFree.String(),
			MonthlyPrice: decimal.Zero,
			CurrencyCode: "USD",
			MaxLeads:     enums.PlanFree.MaxLeads(),
			Features:     []string{"50 leads per month", "Basic widget customization"},
			IsDefault:    true,
		},
		{
			ID:           enums.PlanStarter.String(),
			MonthlyPrice: decimal.NewFromInt(9),
			CurrencyCode: "USD",
			MaxLeads:     enums.PlanStarter.MaxLeads(),
			Features:     []string{"600 leads per month", "Full widget customization", "CSV export"},
		},
		{
			ID:           enums.PlanPro.String(),
			MonthlyPrice: decimal.NewFromInt(29),
			CurrencyCode: "USD",
			MaxLeads:     enums.PlanPro.MaxLeads(),
			Unlimited:    true,
			Features:     []string{"Unlimited leads", "Full widget customization", "CSV export", "Priority support"},
		},
	}
}
