package controllers

import (
	"net/http"

	"github.com/memohit/boostacart-backend/api/responses"
	"github.com/memohit/boostacart-backend/internal/widget"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

// WidgetStore resolves the widget configuration for a storefront domain.
func WidgetStore(svc widget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "widget service unavailable"))
			return
		}

		domain := r.URL.Query().Get("store")
		if domain == "" {
			domain = r.URL.Query().Get("shop")
		}
		if domain == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "store query parameter is required"))
			return
		}

		cfg, err := svc.ResolveForDomain(r.Context(), domain)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cfg)
	}
}
