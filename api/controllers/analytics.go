package controllers

import (
	"net/http"

	"github.com/memohit/boostacart-backend/api/responses"
	"github.com/memohit/boostacart-backend/api/validators"
	"github.com/memohit/boostacart-backend/internal/analytics"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

// StoreAnalytics bundles the dashboard read models into one payload.
func StoreAnalytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		storeID, ok := storeIDParam(w, r, logg)
		if !ok {
			return
		}

		days, err := validators.ParseQueryInt(r, "days", 0, 0, 365)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		overview, err := svc.Overview(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		byDay, err := svc.LeadsByDay(r.Context(), storeID, days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		topProducts, err := svc.TopProducts(r.Context(), storeID, days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"overview":     overview,
			"leads_by_day": byDay,
			"top_products": topProducts,
		})
	}
}
