package leads

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/internal/quota"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
	"github.com/memohit/boostacart-backend/pkg/metrics"
	"github.com/memohit/boostacart-backend/pkg/pagination"
)

const maxFieldLen = 255

// Service exposes lead capture and read operations.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)
	List(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*LeadListResult, error)
	ExportCSV(ctx context.Context, storeID uuid.UUID, w io.Writer) error
}

// SubmitInput holds one widget submission.
type SubmitInput struct {
	StoreDomain     string
	Name            string
	Email           string
	Phone           string
	ProductName     string
	ProductTitle    string
	DetectedProduct string
	ProductURL      string
	ProductHandle   string
	ProductID       string
	VariantID       string
}

type ingestStore interface {
	FindStoreByDomain(ctx context.Context, domain string) (*models.Store, error)
	CreateLeadWithQuota(ctx context.Context, store *models.Store, lead *models.Lead) (int, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, params pagination.Params) ([]models.Lead, error)
	ListAllByStore(ctx context.Context, storeID uuid.UUID) ([]models.Lead, error)
}

type statsRefresher interface {
	SnapshotForStore(ctx context.Context, store *models.Store) (*quota.Snapshot, error)
}

type service struct {
	repo    ingestStore
	quota   statsRefresher
	metrics *metrics.IngestMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService constructs a lead service instance.
func NewService(repo ingestStore, quotaSvc statsRefresher, ingest *metrics.IngestMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("lead repository required")
	}
	if quotaSvc == nil {
		return nil, fmt.Errorf("quota service required")
	}
	return &service{
		repo:    repo,
		quota:   quotaSvc,
		metrics: ingest,
		logg:    logg,
		now:     time.Now,
	}, nil
}

// Submit validates the payload, enforces the store's monthly allowance and
// persists the lead.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	start := s.now()

	lead, store, err := s.submit(ctx, input)
	if err != nil {
		s.metrics.IncRejected(rejectionReason(err))
		s.metrics.ObserveDuration("rejected", s.now().Sub(start))
		return nil, err
	}

	s.metrics.IncAccepted(store.Plan.String())
	s.metrics.ObserveDuration("accepted", s.now().Sub(start))

	// snapshot refresh keeps the dashboard read model warm; the submit has
	// already committed, so a failure here only logs
	snap, snapErr := s.quota.SnapshotForStore(ctx, store)
	result := &SubmitResult{Lead: toLeadDTO(lead)}
	if snapErr == nil {
		result.CurrentUsage = snap.CurrentUsage
		result.MaxAllowed = snap.MaxLeads
		result.RemainingLeads = snap.RemainingLeads
	} else if s.logg != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"error": snapErr.Error()}), "leads.snapshot_refresh.failed")
	}

	if s.logg != nil {
		logCtx := s.logg.WithLeadID(s.logg.WithStoreID(ctx, store.ID.String()), lead.ID.String())
		s.logg.Info(logCtx, "leads.captured")
	}

	return result, nil
}

func (s *service) submit(ctx context.Context, input SubmitInput) (*models.Lead, *models.Store, error) {
	domain := strings.ToLower(strings.TrimSpace(input.StoreDomain))
	if domain == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "store domain is required")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if len(name) > maxFieldLen {
		name = name[:maxFieldLen]
	}

	// email is stored as supplied; the capture form only validates it
	// client-side and shoppers may leave both contact fields empty
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phoneRaw := strings.TrimSpace(input.Phone)

	var phone string
	if phoneRaw != "" {
		normalized, ok := NormalizePhone(phoneRaw)
		if !ok {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid phone number").
				WithDetails(map[string]string{"phone": "must be a valid phone number"})
		}
		phone = normalized
	}

	store, err := s.repo.FindStoreByDomain(ctx, domain)
	if err != nil {
		return nil, nil, err
	}

	lead := &models.Lead{
		ID:              uuid.New(),
		StoreID:         store.ID,
		Name:            name,
		Email:           optional(email),
		Phone:           optional(phone),
		DetectedProduct: strings.TrimSpace(input.DetectedProduct),
		ProductName:     ResolveProductName(input.ProductName, input.ProductTitle, input.DetectedProduct),
		ProductTitle:    optional(strings.TrimSpace(input.ProductTitle)),
		ProductURL:      optional(strings.TrimSpace(input.ProductURL)),
		ProductHandle:   optional(strings.TrimSpace(input.ProductHandle)),
		ProductID:       optional(strings.TrimSpace(input.ProductID)),
		VariantID:       optional(strings.TrimSpace(input.VariantID)),
		CreatedAt:       s.now(),
	}

	if _, err := s.repo.CreateLeadWithQuota(ctx, store, lead); err != nil {
		return nil, nil, err
	}

	return lead, store, nil
}

// List returns one page of the store's leads, newest first.
func (s *service) List(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*LeadListResult, error) {
	rows, err := s.repo.ListByStore(ctx, storeID, params)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	result := &LeadListResult{Leads: make([]LeadDTO, 0, len(rows))}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		result.Leads = append(result.Leads, *toLeadDTO(&rows[i]))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.NextCursor = &cursor
	}

	return result, nil
}

func toLeadDTO(lead *models.Lead) *LeadDTO {
	return &LeadDTO{
		ID:            lead.ID,
		StoreID:       lead.StoreID,
		Name:          lead.Name,
		Email:         lead.Email,
		Phone:         lead.Phone,
		ProductName:   lead.ProductName,
		ProductURL:    lead.ProductURL,
		ProductHandle: lead.ProductHandle,
		ProductID:     lead.ProductID,
		VariantID:     lead.VariantID,
		IsSaved:       lead.IsSaved,
		CreatedAt:     lead.CreatedAt,
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func rejectionReason(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "internal"
	}
	switch typed.Code() {
	case pkgerrors.CodePlanLimit:
		return "quota"
	case pkgerrors.CodeValidation:
		return "validation"
	case pkgerrors.CodeNotFound:
		return "unknown_store"
	default:
		return "internal"
	}
}
