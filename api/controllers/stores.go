package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/api/responses"
	"github.com/memohit/boostacart-backend/api/validators"
	"github.com/memohit/boostacart-backend/internal/leads"
	"github.com/memohit/boostacart-backend/internal/quota"
	"github.com/memohit/boostacart-backend/internal/savedleads"
	"github.com/memohit/boostacart-backend/internal/stores"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
	"github.com/memohit/boostacart-backend/pkg/pagination"
)

type ensureStoreRequest struct {
	UserID        string  `json:"user_id" validate:"required,uuid4"`
	Name          string  `json:"name" validate:"required,max=255"`
	Domain        string  `json:"domain,omitempty" validate:"omitempty,max=255"`
	ShopifyDomain string  `json:"shopify_domain" validate:"required,max=255"`
	StoreSlug     *string `json:"store_slug,omitempty" validate:"omitempty,max=255"`
}

// StoreEnsure provisions the caller's store on first signup and returns the
// existing one on every later call.
func StoreEnsure(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		var payload ensureStoreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := uuid.Parse(payload.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		store, err := svc.EnsureStore(r.Context(), stores.EnsureStoreInput{
			UserID:        userID,
			Name:          payload.Name,
			Domain:        payload.Domain,
			ShopifyDomain: payload.ShopifyDomain,
			StoreSlug:     payload.StoreSlug,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

// StoreSummary returns the fresh quota snapshot for the dashboard header.
func StoreSummary(storeSvc stores.Service, quotaSvc quota.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if storeSvc == nil || quotaSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		storeID, ok := storeIDParam(w, r, logg)
		if !ok {
			return
		}

		store, err := storeSvc.GetByID(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := quotaSvc.SnapshotForStore(r.Context(), store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

// StoreLeads lists captured leads for a store, newest first, cursor paginated.
func StoreLeads(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lead service unavailable"))
			return
		}

		storeID, ok := storeIDParam(w, r, logg)
		if !ok {
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		}

		page, err := svc.List(r.Context(), storeID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// StoreLeadsExport streams every lead for the store as a CSV download.
func StoreLeadsExport(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lead service unavailable"))
			return
		}

		storeID, ok := storeIDParam(w, r, logg)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="leads.csv"`)
		if err := svc.ExportCSV(r.Context(), storeID, w); err != nil {
			// headers already sent; log instead of rewriting the response
			if logg != nil {
				logg.Error(r.Context(), "leads.export.failed", err)
			}
		}
	}
}

type saveLeadsRequest struct {
	LeadIDs []string `json:"lead_ids" validate:"required,min=1,dive,uuid4"`
}

// StoreLeadsSave copies the selected leads into the saved list.
func StoreLeadsSave(svc savedleads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "saved lead service unavailable"))
			return
		}

		storeID, ok := storeIDParam(w, r, logg)
		if !ok {
			return
		}

		var payload saveLeadsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved := make([]savedleads.SavedLeadDTO, 0, len(payload.LeadIDs))
		for _, raw := range payload.LeadIDs {
			leadID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid lead id"))
				return
			}
			dto, err := svc.Save(r.Context(), storeID, leadID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			saved = append(saved, *dto)
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, saved)
	}
}

// StoreSavedLeads returns the saved list, newest save first.
func StoreSavedLeads(svc savedleads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "saved lead service unavailable"))
			return
		}

		storeID, ok := storeIDParam(w, r, logg)
		if !ok {
			return
		}

		rows, err := svc.List(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// StoreSavedLeadsExport streams the saved list as a CSV download.
func StoreSavedLeadsExport(svc savedleads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "saved lead service unavailable"))
			return
		}

		storeID, ok := storeIDParam(w, r, logg)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="saved-leads.csv"`)
		if err := svc.ExportCSV(r.Context(), storeID, w); err != nil {
			if logg != nil {
				logg.Error(r.Context(), "savedleads.export.failed", err)
			}
		}
	}
}

// StoreSavedLeadDelete removes one saved copy. The source lead stays.
func StoreSavedLeadDelete(svc savedleads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "saved lead service unavailable"))
			return
		}

		storeID, ok := storeIDParam(w, r, logg)
		if !ok {
			return
		}

		savedID, err := uuid.Parse(chi.URLParam(r, "savedId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid saved lead id"))
			return
		}

		if err := svc.Delete(r.Context(), storeID, savedID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

func storeIDParam(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "storeId"))
	if err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id"))
		return uuid.Nil, false
	}
	return id, true
}
