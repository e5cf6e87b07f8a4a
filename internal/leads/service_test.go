package leads

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/internal/quota"
	"github.com/memohit/boostacart-backend/pkg/db/models"
	"github.com/memohit/boostacart-backend/pkg/enums"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/pagination"
)

type stubIngestStore struct {
	store    *models.Store
	storeErr error
	quotaErr error
	created  []*models.Lead
	rows     []models.Lead
}

func (s *stubIngestStore) FindStoreByDomain(ctx context.Context, domain string) (*models.Store, error) {
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	return s.store, nil
}

func (s *stubIngestStore) CreateLeadWithQuota(ctx context.Context, store *models.Store, lead *models.Lead) (int, error) {
	if s.quotaErr != nil {
		return 0, s.quotaErr
	}
	s.created = append(s.created, lead)
	return len(s.created), nil
}

func (s *stubIngestStore) ListByStore(ctx context.Context, storeID uuid.UUID, params pagination.Params) ([]models.Lead, error) {
	return s.rows, nil
}

func (s *stubIngestStore) ListAllByStore(ctx context.Context, storeID uuid.UUID) ([]models.Lead, error) {
	return s.rows, nil
}

type stubRefresher struct {
	snap *quota.Snapshot
	err  error
}

func (s *stubRefresher) SnapshotForStore(ctx context.Context, store *models.Store) (*quota.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snap, nil
}

func freeStore() *models.Store {
	return &models.Store{
		ID:            uuid.New(),
		Name:          "Demo",
		ShopifyDomain: "demo.myshopify.com",
		Plan:          enums.PlanFree,
		MaxLeads:      50,
	}
}

func validInput() SubmitInput {
	return SubmitInput{
		StoreDomain:  "demo.myshopify.com",
		Name:         "Jane Shopper",
		Email:        "jane@example.com",
		ProductTitle: "Red Hoodie | Shop",
	}
}

func newTestService(repo *stubIngestStore, refresher *stubRefresher) Service {
	if refresher == nil {
		refresher = &stubRefresher{snap: &quota.Snapshot{CurrentUsage: 1, MaxLeads: 50, RemainingLeads: 49}}
	}
	svc, err := NewService(repo, refresher, nil, nil)
	if err != nil {
		panic(err)
	}
	return svc
}

func TestSubmitCapturesLead(t *testing.T) {
	repo := &stubIngestStore{store: freeStore()}
	svc := newTestService(repo, nil)

	result, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
	if result.Lead.ProductName != "Red Hoodie | Shop" {
		t.Fatalf("unexpected product name %q", result.Lead.ProductName)
	}
	if result.CurrentUsage != 1 || result.MaxAllowed != 50 {
		t.Fatalf("unexpected usage %d/%d", result.CurrentUsage, result.MaxAllowed)
	}
	if repo.created[0].Email == nil || *repo.created[0].Email != "jane@example.com" {
		t.Fatalf("expected normalized email")
	}
}

func TestSubmitAcceptsNameOnly(t *testing.T) {
	repo := &stubIngestStore{store: freeStore()}
	svc := newTestService(repo, nil)

	input := validInput()
	input.Email = ""
	input.Phone = ""

	if _, err := svc.Submit(context.Background(), input); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
	if repo.created[0].Email != nil || repo.created[0].Phone != nil {
		t.Fatalf("expected null contact columns, got %+v", repo.created[0])
	}
}

func TestSubmitStoresEmailAsSupplied(t *testing.T) {
	repo := &stubIngestStore{store: freeStore()}
	svc := newTestService(repo, nil)

	// the form only checks email shape client-side
	input := validInput()
	input.Email = "not-an-email"

	if _, err := svc.Submit(context.Background(), input); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
	if repo.created[0].Email == nil || *repo.created[0].Email != "not-an-email" {
		t.Fatalf("expected verbatim email, got %+v", repo.created[0].Email)
	}
}

func TestSubmitRejectsBadPhone(t *testing.T) {
	repo := &stubIngestStore{store: freeStore()}
	svc := newTestService(repo, nil)

	input := validInput()
	input.Email = ""
	input.Phone = "1234567890"

	_, err := svc.Submit(context.Background(), input)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestSubmitAcceptsPhoneOnly(t *testing.T) {
	repo := &stubIngestStore{store: freeStore()}
	svc := newTestService(repo, nil)

	input := validInput()
	input.Email = ""
	input.Phone = "+1 (415) 555-2671"

	_, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got := *repo.created[0].Phone; got != "+14155552671" {
		t.Fatalf("expected normalized phone, got %q", got)
	}
}

func TestSubmitPropagatesQuotaRefusal(t *testing.T) {
	quotaErr := pkgerrors.New(pkgerrors.CodePlanLimit, "monthly lead limit reached").
		WithDetails(map[string]any{"currentUsage": 50, "maxAllowed": 50})
	repo := &stubIngestStore{store: freeStore(), quotaErr: quotaErr}
	svc := newTestService(repo, nil)

	_, err := svc.Submit(context.Background(), validInput())
	if err == nil {
		t.Fatalf("expected quota error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodePlanLimit {
		t.Fatalf("expected plan limit code, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["currentUsage"] != 50 {
		t.Fatalf("expected usage details, got %v", typed.Details())
	}
}

func TestSubmitUnknownStore(t *testing.T) {
	repo := &stubIngestStore{storeErr: pkgerrors.New(pkgerrors.CodeNotFound, "store not found")}
	svc := newTestService(repo, nil)

	_, err := svc.Submit(context.Background(), validInput())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSubmitSurvivesSnapshotFailure(t *testing.T) {
	repo := &stubIngestStore{store: freeStore()}
	svc := newTestService(repo, &stubRefresher{err: pkgerrors.New(pkgerrors.CodeDependency, "db down")})

	result, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("submit should succeed despite refresh failure: %v", err)
	}
	if result.Lead == nil {
		t.Fatalf("expected lead in result")
	}
}

func TestListPaginates(t *testing.T) {
	now := time.Now()
	rows := make([]models.Lead, 0, 26)
	for i := 0; i < 26; i++ {
		rows = append(rows, models.Lead{
			ID:          uuid.New(),
			Name:        "Lead",
			ProductName: "Item",
			CreatedAt:   now.Add(-time.Duration(i) * time.Minute),
		})
	}
	repo := &stubIngestStore{rows: rows}
	svc := newTestService(repo, nil)

	result, err := svc.List(context.Background(), uuid.New(), pagination.Params{Limit: 25})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Leads) != 25 {
		t.Fatalf("expected 25 leads, got %d", len(result.Leads))
	}
	if result.NextCursor == nil {
		t.Fatalf("expected next cursor for overfull page")
	}
}

func TestExportCSV(t *testing.T) {
	email := "jane@example.com"
	url := "https://demo.com/products/red-hoodie"
	repo := &stubIngestStore{rows: []models.Lead{
		{
			Name:        "Jane Shopper",
			Email:       &email,
			ProductName: "Red Hoodie",
			ProductURL:  &url,
			IsSaved:     true,
			CreatedAt:   time.Date(2025, time.March, 17, 10, 0, 0, 0, time.UTC),
		},
	}}
	svc := newTestService(repo, nil)

	var buf bytes.Buffer
	if err := svc.ExportCSV(context.Background(), uuid.New(), &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Name,Email,Phone,Product") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Jane Shopper") || !strings.Contains(lines[1], "yes") {
		t.Fatalf("unexpected row %q", lines[1])
	}
}
