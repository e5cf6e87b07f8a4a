package widget

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/internal/quota"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	"github.com/memohit/boostacart-backend/pkg/enums"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
)

type stubSettingsStore struct {
	settings *models.WidgetSettings
	upserts  []*models.WidgetSettings
}

func (s *stubSettingsStore) FindByStoreID(ctx context.Context, storeID uuid.UUID) (*models.WidgetSettings, error) {
	if s.settings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "widget settings not found")
	}
	return s.settings, nil
}

func (s *stubSettingsStore) Upsert(ctx context.Context, settings *models.WidgetSettings) error {
	s.upserts = append(s.upserts, settings)
	s.settings = settings
	return nil
}

type stubStoreResolver struct {
	store     *models.Store
	installed []uuid.UUID
}

func (s *stubStoreResolver) FindByDomain(ctx context.Context, domain string) (*models.Store, error) {
	if s.store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return s.store, nil
}

func (s *stubStoreResolver) MarkInstalled(ctx context.Context, id uuid.UUID) error {
	s.installed = append(s.installed, id)
	return nil
}

type stubQuotaProvider struct {
	snap *quota.Snapshot
}

func (s *stubQuotaProvider) SnapshotForStore(ctx context.Context, store *models.Store) (*quota.Snapshot, error) {
	return s.snap, nil
}

func newWidgetService(settings *stubSettingsStore, stores *stubStoreResolver, snap *quota.Snapshot) Service {
	if snap == nil {
		snap = &quota.Snapshot{Plan: enums.PlanFree, MaxLeads: 50, CurrentUsage: 5, RemainingLeads: 45}
	}
	svc, err := NewService(settings, stores, &stubQuotaProvider{snap: snap}, nil)
	if err != nil {
		panic(err)
	}
	return svc
}

func TestResolveAppliesDefaults(t *testing.T) {
	stores := &stubStoreResolver{store: &models.Store{
		ID:            uuid.New(),
		ShopifyDomain: "demo.myshopify.com",
		Plan:          enums.PlanFree,
	}}
	svc := newWidgetService(&stubSettingsStore{}, stores, nil)

	cfg, err := svc.ResolveForDomain(context.Background(), "demo.myshopify.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	s := cfg.Settings
	if s.Heading != "Get Exclusive Discount!" {
		t.Fatalf("unexpected heading %q", s.Heading)
	}
	if s.Description != "Leave your details and get 20% off your next order" {
		t.Fatalf("unexpected description %q", s.Description)
	}
	if s.ButtonText != "Get My Discount" {
		t.Fatalf("unexpected button text %q", s.ButtonText)
	}
	if s.BackgroundColor != "#ffffff" || s.TextColor != "#1f2937" || s.ButtonColor != "#3b82f6" {
		t.Fatalf("unexpected colors %q %q %q", s.BackgroundColor, s.TextColor, s.ButtonColor)
	}
	if s.OverlayOpacity != 0.8 {
		t.Fatalf("unexpected opacity %v", s.OverlayOpacity)
	}
	if !s.IsActive || !s.ShowEmail || s.ShowPhone || !s.ShowCouponPage {
		t.Fatalf("unexpected toggles %+v", s)
	}
	if s.DiscountCode != "SAVE20" {
		t.Fatalf("unexpected discount %q", s.DiscountCode)
	}
	if s.RedirectURL != nil {
		t.Fatalf("expected nil redirect")
	}
	if !cfg.ShouldRender {
		t.Fatalf("active store under limit should render")
	}
}

func TestResolveMergesStoredValues(t *testing.T) {
	heading := "Custom Heading"
	opacity := 0.5
	showPhone := true
	settings := &stubSettingsStore{settings: &models.WidgetSettings{
		Heading:        &heading,
		OverlayOpacity: &opacity,
		ShowPhone:      &showPhone,
	}}
	stores := &stubStoreResolver{store: &models.Store{ID: uuid.New(), ShopifyDomain: "demo.myshopify.com", Plan: enums.PlanFree}}
	svc := newWidgetService(settings, stores, nil)

	cfg, err := svc.ResolveForDomain(context.Background(), "demo.myshopify.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Settings.Heading != "Custom Heading" {
		t.Fatalf("stored heading should win, got %q", cfg.Settings.Heading)
	}
	if cfg.Settings.OverlayOpacity != 0.5 {
		t.Fatalf("stored opacity should win, got %v", cfg.Settings.OverlayOpacity)
	}
	if !cfg.Settings.ShowPhone {
		t.Fatalf("stored toggle should win")
	}
	if cfg.Settings.ButtonText != "Get My Discount" {
		t.Fatalf("unset fields keep defaults, got %q", cfg.Settings.ButtonText)
	}
}

func TestResolveMarksInstalled(t *testing.T) {
	store := &models.Store{ID: uuid.New(), ShopifyDomain: "demo.myshopify.com", Plan: enums.PlanFree}
	stores := &stubStoreResolver{store: store}
	svc := newWidgetService(&stubSettingsStore{}, stores, nil)

	if _, err := svc.ResolveForDomain(context.Background(), "demo.myshopify.com"); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(stores.installed) != 1 {
		t.Fatalf("expected install mark")
	}

	store.Installed = true
	if _, err := svc.ResolveForDomain(context.Background(), "demo.myshopify.com"); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(stores.installed) != 1 {
		t.Fatalf("installed store should not be marked again")
	}
}

func TestResolveAtLimitStopsRendering(t *testing.T) {
	stores := &stubStoreResolver{store: &models.Store{ID: uuid.New(), ShopifyDomain: "demo.myshopify.com", Plan: enums.PlanFree}}
	snap := &quota.Snapshot{Plan: enums.PlanFree, MaxLeads: 50, CurrentUsage: 50, AtLimit: true}
	svc := newWidgetService(&stubSettingsStore{}, stores, snap)

	cfg, err := svc.ResolveForDomain(context.Background(), "demo.myshopify.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.ShouldRender {
		t.Fatalf("store at limit must not render the widget")
	}
	if !cfg.AtLimit {
		t.Fatalf("expected at-limit flag")
	}
}

func TestUpdateSettingsValidatesOpacity(t *testing.T) {
	svc := newWidgetService(&stubSettingsStore{}, &stubStoreResolver{}, nil)

	bad := 1.5
	_, err := svc.UpdateSettings(context.Background(), uuid.New(), UpdateSettingsInput{OverlayOpacity: &bad})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateSettingsMergesPartialInput(t *testing.T) {
	settings := &stubSettingsStore{}
	svc := newWidgetService(settings, &stubStoreResolver{}, nil)
	storeID := uuid.New()

	heading := "First Heading"
	if _, err := svc.UpdateSettings(context.Background(), storeID, UpdateSettingsInput{Heading: &heading}); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	inactive := false
	resolved, err := svc.UpdateSettings(context.Background(), storeID, UpdateSettingsInput{IsActive: &inactive})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if resolved.Heading != "First Heading" {
		t.Fatalf("earlier customization lost, got %q", resolved.Heading)
	}
	if resolved.IsActive {
		t.Fatalf("expected widget disabled")
	}
	if len(settings.upserts) != 2 {
		t.Fatalf("expected two persisted writes, got %d", len(settings.upserts))
	}
}
