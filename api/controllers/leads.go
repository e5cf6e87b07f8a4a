package controllers

import (
	"errors"
	"net/http"

	"github.com/memohit/boostacart-backend/api/responses"
	"github.com/memohit/boostacart-backend/api/validators"
	"github.com/memohit/boostacart-backend/internal/leads"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

type leadSubmitRequest struct {
	StoreID         string `json:"store_id" validate:"required,uuid"`
	ShopifyDomain   string `json:"shopify_domain" validate:"required"`
	Name            string `json:"name" validate:"required,max=255"`
	Email           string `json:"email,omitempty" validate:"omitempty,max=255"`
	Phone           string `json:"phone,omitempty" validate:"omitempty,max=32"`
	DetectedProduct string `json:"detected_product,omitempty"`
	ProductName     string `json:"product_name,omitempty"`
	ProductTitle    string `json:"product_title,omitempty"`
	ProductURL      string `json:"product_url,omitempty"`
	ProductHandle   string `json:"product_handle,omitempty"`
	ProductID       string `json:"product_id,omitempty"`
	VariantID       string `json:"variant_id,omitempty"`
}

func (r leadSubmitRequest) toInput() leads.SubmitInput {
	return leads.SubmitInput{
		StoreDomain:     validators.SanitizeString(r.ShopifyDomain, 255),
		Name:            validators.SanitizeString(r.Name, 255),
		Email:           validators.SanitizeString(r.Email, 255),
		Phone:           validators.SanitizeString(r.Phone, 32),
		DetectedProduct: validators.SanitizeString(r.DetectedProduct, 255),
		ProductName:     validators.SanitizeString(r.ProductName, 255),
		ProductTitle:    validators.SanitizeString(r.ProductTitle, 255),
		ProductURL:      validators.SanitizeString(r.ProductURL, 1000),
		ProductHandle:   validators.SanitizeString(r.ProductHandle, 255),
		ProductID:       validators.SanitizeString(r.ProductID, 64),
		VariantID:       validators.SanitizeString(r.VariantID, 64),
	}
}

// LeadSubmit accepts a widget submission. A store at its monthly allowance
// gets the legacy 403 body the embedded script already understands.
func LeadSubmit(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lead service unavailable"))
			return
		}

		var payload leadSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), payload.toInput())
		if err != nil {
			if usage, max, ok := quotaRejectionDetails(err); ok {
				responses.WriteQuotaRejection(w, usage, max)
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"success":         true,
			"lead":            result.Lead,
			"current_usage":   result.CurrentUsage,
			"max_allowed":     result.MaxAllowed,
			"remaining_leads": result.RemainingLeads,
		})
	}
}

func quotaRejectionDetails(err error) (int, int, bool) {
	var typed *pkgerrors.Error
	if !errors.As(err, &typed) || typed.Code() != pkgerrors.CodePlanLimit {
		return 0, 0, false
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		return 0, 0, true
	}
	usage, _ := details["currentUsage"].(int)
	max, _ := details["maxAllowed"].(int)
	return usage, max, true
}
