package controllers

import (
	"net/http"

	"github.com/memohit/boostacart-backend/api/responses"
	"github.com/memohit/boostacart-backend/internal/plans"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

// PlanCatalog returns the public pricing tiers.
func PlanCatalog(svc plans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "plan service unavailable"))
			return
		}

		catalog, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, catalog)
	}
}
