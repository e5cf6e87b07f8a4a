package savedleads

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/pkg/db/models"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

// Service exposes saved-lead operations.
type Service interface {
	Save(ctx context.Context, storeID, leadID uuid.UUID) (*SavedLeadDTO, error)
	List(ctx context.Context, storeID uuid.UUID) ([]SavedLeadDTO, error)
	Delete(ctx context.Context, storeID, savedID uuid.UUID) error
	ExportCSV(ctx context.Context, storeID uuid.UUID, w io.Writer) error
}

// SavedLeadDTO is the saved-lead payload returned to the dashboard.
type SavedLeadDTO struct {
	ID            uuid.UUID `json:"id"`
	LeadID        uuid.UUID `json:"lead_id"`
	Name          string    `json:"name"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	ProductName   string    `json:"product_name"`
	ProductURL    *string   `json:"product_url,omitempty"`
	LeadCreatedAt time.Time `json:"lead_created_at"`
	SavedAt       time.Time `json:"saved_at"`
}

type savedLeadStore interface {
	FindLead(ctx context.Context, storeID, leadID uuid.UUID) (*models.Lead, error)
	FindByLeadID(ctx context.Context, storeID, leadID uuid.UUID) (*models.SavedLead, error)
	CreateCopy(ctx context.Context, saved *models.SavedLead) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.SavedLead, error)
	DeleteCopy(ctx context.Context, storeID, savedID uuid.UUID) error
}

type service struct {
	repo savedLeadStore
	logg *logger.Logger
	now  func() time.Time
}

// NewService constructs a saved-lead service instance.
func NewService(repo savedLeadStore, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("saved lead repository required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

// Save copies the lead into the saved list. Saving an already saved lead
// returns the existing copy.
func (s *service) Save(ctx context.Context, storeID, leadID uuid.UUID) (*SavedLeadDTO, error) {
	if existing, err := s.repo.FindByLeadID(ctx, storeID, leadID); err == nil {
		return toSavedLeadDTO(existing), nil
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	lead, err := s.repo.FindLead(ctx, storeID, leadID)
	if err != nil {
		return nil, err
	}

	saved := &models.SavedLead{
		ID:            uuid.New(),
		LeadID:        lead.ID,
		StoreID:       lead.StoreID,
		Name:          lead.Name,
		Email:         lead.Email,
		Phone:         lead.Phone,
		ProductName:   lead.ProductName,
		ProductURL:    lead.ProductURL,
		LeadCreatedAt: lead.CreatedAt,
		SavedAt:       s.now(),
	}

	if err := s.repo.CreateCopy(ctx, saved); err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithLeadID(ctx, lead.ID.String()), "saved_leads.created")
	}

	return toSavedLeadDTO(saved), nil
}

// List returns the store's saved leads, newest save first.
func (s *service) List(ctx context.Context, storeID uuid.UUID) ([]SavedLeadDTO, error) {
	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]SavedLeadDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toSavedLeadDTO(&rows[i]))
	}
	return out, nil
}

// Delete removes the saved copy. The source lead stays untouched apart from
// its is_saved flag.
func (s *service) Delete(ctx context.Context, storeID, savedID uuid.UUID) error {
	return s.repo.DeleteCopy(ctx, storeID, savedID)
}

func toSavedLeadDTO(saved *models.SavedLead) *SavedLeadDTO {
	return &SavedLeadDTO{
		ID:            saved.ID,
		LeadID:        saved.LeadID,
		Name:          saved.Name,
		Email:         saved.Email,
		Phone:         saved.Phone,
		ProductName:   saved.ProductName,
		ProductURL:    saved.ProductURL,
		LeadCreatedAt: saved.LeadCreatedAt,
		SavedAt:       saved.SavedAt,
	}
}
