package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/memohit/boostacart-backend/api/controllers"
	"github.com/memohit/boostacart-backend/api/middleware"
	"github.com/memohit/boostacart-backend/internal/admin"
	"github.com/memohit/boostacart-backend/internal/analytics"
	"github.com/memohit/boostacart-backend/internal/leads"
	"github.com/memohit/boostacart-backend/internal/plans"
	"github.com/memohit/boostacart-backend/internal/quota"
	"github.com/memohit/boostacart-backend/internal/savedleads"
	"github.com/memohit/boostacart-backend/internal/stores"
	"github.com/memohit/boostacart-backend/internal/widget"
	"github.com/memohit/boostacart-backend/pkg/config"
	"github.com/memohit/boostacart-backend/pkg/logger"
	"github.com/memohit/boostacart-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	leadService leads.Service,
	widgetService widget.Service,
	planService plans.Service,
	storeService stores.Service,
	quotaService quota.Service,
	savedLeadService savedleads.Service,
	analyticsService analytics.Service,
	adminService admin.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	submitPolicy := middleware.NewRateLimitPolicy(
		"submit",
		cfg.Throttle.SubmitWindow,
		cfg.Throttle.SubmitIPLimit,
		0,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	// public surface, hit by the embedded widget from arbitrary storefronts
	r.Group(func(r chi.Router) {
		r.Use(middleware.WidgetCORS())

		r.With(
			middleware.RateLimit(submitPolicy, redisClient, logg),
			middleware.Idempotency("leads", redisClient, cfg.Widget.IdempotencyTTL, logg),
		).Post("/api/v1/leads", controllers.LeadSubmit(leadService, logg))

		r.Get("/api/v1/widget-store", controllers.WidgetStore(widgetService, logg))
		r.Get("/api/v1/plans", controllers.PlanCatalog(planService, logg))
	})

	// merchant dashboard
	r.Group(func(r chi.Router) {
		r.Use(middleware.DashboardCORS())

		r.Post("/api/v1/stores/ensure", controllers.StoreEnsure(storeService, logg))

		r.Route("/api/v1/stores/{storeId}", func(r chi.Router) {
			r.Get("/summary", controllers.StoreSummary(storeService, quotaService, logg))
			r.Get("/leads", controllers.StoreLeads(leadService, logg))
			r.Get("/leads/export", controllers.StoreLeadsExport(leadService, logg))
			r.Post("/leads/save", controllers.StoreLeadsSave(savedLeadService, logg))
			r.Get("/saved-leads", controllers.StoreSavedLeads(savedLeadService, logg))
			r.Get("/saved-leads/export", controllers.StoreSavedLeadsExport(savedLeadService, logg))
			r.Delete("/saved-leads/{savedId}", controllers.StoreSavedLeadDelete(savedLeadService, logg))
			r.Get("/widget-settings", controllers.WidgetSettingsGet(widgetService, logg))
			r.Put("/widget-settings", controllers.WidgetSettingsUpdate(widgetService, logg))
			r.Get("/analytics", controllers.StoreAnalytics(analyticsService, logg))
		})
	})

	// operator console
	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.DashboardCORS())

		secureCookie := cfg.App.IsProd()
		r.Post("/login", controllers.AdminLogin(adminService, secureCookie, logg))
		r.Post("/logout", controllers.AdminLogout(secureCookie))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.Admin, logg))
			r.Get("/verify", controllers.AdminVerify())
			r.Get("/stores", controllers.AdminStores(adminService, logg))
			r.Get("/stores/{storeId}/audit-logs", controllers.AdminAuditLogs(adminService, logg))
			r.Post("/update-plan", controllers.AdminUpdatePlan(adminService, logg))
		})
	})

	return r
}
