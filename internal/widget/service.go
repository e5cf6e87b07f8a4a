package widget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/internal/quota"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

// Service resolves the widget's runtime configuration and manages the
// merchant's customizations.
type Service interface {
	ResolveForDomain(ctx context.Context, domain string) (*WidgetConfigDTO, error)
	GetSettings(ctx context.Context, storeID uuid.UUID) (*SettingsDTO, error)
	UpdateSettings(ctx context.Context, storeID uuid.UUID, input UpdateSettingsInput) (*SettingsDTO, error)
}

// WidgetConfigDTO is the resolved payload the embedded script consumes.
type WidgetConfigDTO struct {
	StoreID        uuid.UUID   `json:"store_id"`
	ShopifyDomain  string      `json:"shopify_domain"`
	Settings       SettingsDTO `json:"settings"`
	Plan           string      `json:"plan"`
	CurrentUsage   int         `json:"current_usage"`
	MaxAllowed     int         `json:"max_allowed"`
	RemainingLeads int         `json:"remaining_leads"`
	AtLimit        bool        `json:"at_limit"`
	ShouldRender   bool        `json:"should_render"`
}

// SettingsDTO is the fully resolved widget presentation. Every field has a
// value: defaults fill anything the merchant never set.
type SettingsDTO struct {
	Heading         string  `json:"heading"`
	Description     string  `json:"description"`
	ButtonText      string  `json:"button_text"`
	BackgroundColor string  `json:"background_color"`
	TextColor       string  `json:"text_color"`
	ButtonColor     string  `json:"button_color"`
	OverlayOpacity  float64 `json:"overlay_opacity"`
	IsActive        bool    `json:"is_active"`
	ShowEmail       bool    `json:"show_email"`
	ShowPhone       bool    `json:"show_phone"`
	DiscountCode    string  `json:"discount_code"`
	RedirectURL     *string `json:"redirect_url"`
	ShowCouponPage  bool    `json:"show_coupon_page"`
}

// UpdateSettingsInput carries optional mutations; nil fields keep the
// current value.
type UpdateSettingsInput struct {
	Heading         *string
	Description     *string
	ButtonText      *string
	BackgroundColor *string
	TextColor       *string
	ButtonColor     *string
	OverlayOpacity  *float64
	IsActive        *bool
	ShowEmail       *bool
	ShowPhone       *bool
	DiscountCode    *string
	RedirectURL     *string
	ShowCouponPage  *bool
}

type settingsStore interface {
	FindByStoreID(ctx context.Context, storeID uuid.UUID) (*models.WidgetSettings, error)
	Upsert(ctx context.Context, settings *models.WidgetSettings) error
}

type storeResolver interface {
	FindByDomain(ctx context.Context, domain string) (*models.Store, error)
	MarkInstalled(ctx context.Context, id uuid.UUID) error
}

type quotaProvider interface {
	SnapshotForStore(ctx context.Context, store *models.Store) (*quota.Snapshot, error)
}

type service struct {
	repo      settingsStore
	storeRepo storeResolver
	quota     quotaProvider
	logg      *logger.Logger
	now       func() time.Time
}

// NewService constructs a widget service instance.
func NewService(repo settingsStore, storeRepo storeResolver, quotaSvc quotaProvider, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("widget settings repository required")
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

// ResolveForDomain builds the widget config for a storefront. The first
// resolve marks the store installed.
func (s *service) ResolveForDomain(ctx context.Context, domain string) (*WidgetConfigDTO, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store parameter is required")
	}

	store, err := s.storeRepo.FindByDomain(ctx, domain)
	if err != nil {
		return nil, err
	}

	if !store.Installed {
		if markErr := s.storeRepo.MarkInstalled(ctx, store.ID); markErr != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithStoreID(ctx, store.ID.String()), "widget.mark_installed.failed")
		}
	}

	settings := s.resolvedSettings(ctx, store.ID)

	snap, err := s.quota.SnapshotForStore(ctx, store)
	if err != nil {
		return nil, err
	}

	return &WidgetConfigDTO{
		StoreID:        store.ID,
		ShopifyDomain:  store.ShopifyDomain,
		Settings:       *settings,
		Plan:           snap.Plan.String(),
		CurrentUsage:   snap.CurrentUsage,
		MaxAllowed:     snap.MaxLeads,
		RemainingLeads: snap.RemainingLeads,
		AtLimit:        snap.AtLimit,
		ShouldRender:   settings.IsActive && !snap.AtLimit,
	}, nil
}

// GetSettings returns the resolved settings for the dashboard editor.
func (s *service) GetSettings(ctx context.Context, storeID uuid.UUID) (*SettingsDTO, error) {
	return s.resolvedSettings(ctx, storeID), nil
}

// UpdateSettings merges the supplied fields over the stored row and persists
// the result.
func (s *service) UpdateSettings(ctx context.Context, storeID uuid.UUID, input UpdateSettingsInput) (*SettingsDTO, error) {
	if input.OverlayOpacity != nil && (*input.OverlayOpacity < 0 || *input.OverlayOpacity > 1) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "overlay opacity must be between 0 and 1").
			WithDetails(map[string]string{"overlay_opacity": "must be between 0 and 1"})
	}

	current, err := s.repo.FindByStoreID(ctx, storeID)
	if err != nil {
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			return nil, err
		}
		current = &models.WidgetSettings{StoreID: storeID}
	}

	applyUpdate(current, input)
	current.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, current); err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithStoreID(ctx, storeID.String()), "widget.settings.updated")
	}

	return resolve(current), nil
}

func (s *service) resolvedSettings(ctx context.Context, storeID uuid.UUID) *SettingsDTO {
	stored, err := s.repo.FindByStoreID(ctx, storeID)
	if err != nil {
		stored = nil
	}
	return resolve(stored)
}

func applyUpdate(settings *models.WidgetSettings, input UpdateSettingsInput) {
	if input.Heading != nil {
		settings.Heading = input.Heading
	}
	if input.Description != nil {
		settings.Description = input.Description
	}
	if input.ButtonText != nil {
		settings.ButtonText = input.ButtonText
	}
	if input.BackgroundColor != nil {
		settings.BackgroundColor = input.BackgroundColor
	}
	if input.TextColor != nil {
		settings.TextColor = input.TextColor
	}
	if input.ButtonColor != nil {
		settings.ButtonColor = input.ButtonColor
	}
	if input.OverlayOpacity != nil {
		settings.OverlayOpacity = input.OverlayOpacity
	}
	if input.IsActive != nil {
		settings.IsActive = input.IsActive
	}
	if input.ShowEmail != nil {
		settings.ShowEmail = input.ShowEmail
	}
	if input.ShowPhone != nil {
		settings.ShowPhone = input.ShowPhone
	}
	if input.DiscountCode != nil {
		settings.DiscountCode = input.DiscountCode
	}
	if input.RedirectURL != nil {
		settings.RedirectURL = input.RedirectURL
	}
	if input.ShowCouponPage != nil {
		settings.ShowCouponPage = input.ShowCouponPage
	}
}

// resolve layers the stored row over the defaults. A nil row yields pure
// defaults.
func resolve(stored *models.WidgetSettings) *SettingsDTO {
	out := &SettingsDTO{
		Heading:         defaultHeading,
		Description:     defaultDescription,
		ButtonText:      defaultButtonText,
		BackgroundColor: defaultBackgroundColor,
		TextColor:       defaultTextColor,
		ButtonColor:     defaultButtonColor,
		OverlayOpacity:  defaultOverlayOpacity,
		IsActive:        defaultIsActive,
		ShowEmail:       defaultShowEmail,
		ShowPhone:       defaultShowPhone,
		DiscountCode:    defaultDiscountCode,
		RedirectURL:     nil,
		ShowCouponPage:  defaultShowCouponPage,
	}
	if stored == nil {
		return out
	}

	if v := stringValue(stored.Heading); v != "" {
		out.Heading = v
	}
	if v := stringValue(stored.Description); v != "" {
		out.Description = v
	}
	if v := stringValue(stored.ButtonText); v != "" {
		out.ButtonText = v
	}
	if v := stringValue(stored.BackgroundColor); v != "" {
		out.BackgroundColor = v
	}
	if v := stringValue(stored.TextColor); v != "" {
		out.TextColor = v
	}
	if v := stringValue(stored.ButtonColor); v != "" {
		out.ButtonColor = v
	}
	if stored.OverlayOpacity != nil {
		out.OverlayOpacity = *stored.OverlayOpacity
	}
	if stored.IsActive != nil {
		out.IsActive = *stored.IsActive
	}
	if stored.ShowEmail != nil {
		out.ShowEmail = *stored.ShowEmail
	}
	if stored.ShowPhone != nil {
		out.ShowPhone = *stored.ShowPhone
	}
	if v := stringValue(stored.DiscountCode); v != "" {
		out.DiscountCode = v
	}
	if stored.RedirectURL != nil && strings.TrimSpace(*stored.RedirectURL) != "" {
		out.RedirectURL = stored.RedirectURL
	}
	if stored.ShowCouponPage != nil {
		out.ShowCouponPage = *stored.ShowCouponPage
	}
	return out
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
