package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/memohit/boostacart-backend/api/middleware"
	"github.com/memohit/boostacart-backend/api/responses"
	"github.com/memohit/boostacart-backend/api/validators"
	"github.com/memohit/boostacart-backend/internal/admin"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin verifies the operator credential and sets the session cookie.
func AdminLogin(svc admin.Service, secureCookie bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		var payload adminLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), admin.LoginInput{
			Username: payload.Username,
			Password: payload.Password,
			IP:       middleware.ClientIP(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    result.Token,
			Path:     "/",
			MaxAge:   int(result.ExpiresIn.Seconds()),
			HttpOnly: true,
			Secure:   secureCookie,
			SameSite: http.SameSiteLaxMode,
		})

		responses.WriteSuccess(w, map[string]any{
			"token":      result.Token,
			"expires_in": int(result.ExpiresIn.Seconds()),
		})
	}
}

// AdminLogout clears the session cookie. Tokens stay valid until expiry.
func AdminLogout(secureCookie bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
		responses.WriteSuccess(w, map[string]bool{"logged_out": true})
	}
}

// AdminVerify confirms the session is live and names the operator.
func AdminVerify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middleware.AdminUserFromContext(r.Context())
		if username == "" {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session missing"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"username": username})
	}
}

// AdminStores lists every store with its usage counters.
func AdminStores(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		rows, err := svc.ListStores(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

type updatePlanRequest struct {
	StoreID string `json:"storeId" validate:"required,uuid4"`
	NewPlan string `json:"newPlan" validate:"required"`
}

// AdminUpdatePlan moves a store to a new plan and appends an audit entry.
func AdminUpdatePlan(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		var payload updatePlanRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := uuid.Parse(payload.StoreID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id"))
			return
		}

		change, err := svc.ChangePlan(r.Context(), admin.ChangePlanInput{
			StoreID:   storeID,
			NewPlan:   payload.NewPlan,
			ChangedBy: middleware.AdminUserFromContext(r.Context()),
			IPAddress: middleware.ClientIP(r),
			UserAgent: r.UserAgent(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, change)
	}
}

// AdminAuditLogs returns the newest audit entries for one store.
func AdminAuditLogs(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		storeID, ok := storeIDParam(w, r, logg)
		if !ok {
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.AuditLogs(r.Context(), storeID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}
