package controllers

import (
	"net/http"

	"github.com/memohit/boostacart-backend/api/responses"
	"github.com/memohit/boostacart-backend/api/validators"
	"github.com/memohit/boostacart-backend/internal/widget"
	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
	"github.com/memohit/boostacart-backend/pkg/logger"
)

type widgetSettingsRequest struct {
	Heading         *string  `json:"heading,omitempty" validate:"omitempty,max=255"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	ButtonText      *string  `json:"button_text,omitempty" validate:"omitempty,max=255"`
	BackgroundColor *string  `json:"background_color,omitempty" validate:"omitempty,max=32"`
	TextColor       *string  `json:"text_color,omitempty" validate:"omitempty,max=32"`
	ButtonColor     *string  `json:"button_color,omitempty" validate:"omitempty,max=32"`
	OverlayOpacity  *float64 `json:"overlay_opacity,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
	ShowEmail       *bool    `json:"show_email,omitempty"`
	ShowPhone       *bool    `json:"show_phone,omitempty"`
	DiscountCode    *string  `json:"discount_code,omitempty" validate:"omitempty,max=64"`
	RedirectURL     *string  `json:"redirect_url,omitempty" validate:"omitempty,max=1000"`
	ShowCouponPage  *bool    `json:"show_coupon_page,omitempty"`
}

func (r widgetSettingsRequest) toInput() widget.UpdateSettingsInput {
	return widget.UpdateSettingsInput{
		Heading:         r.Heading,
		Description:     r.Description,
		ButtonText:      r.ButtonText,
		BackgroundColor: r.BackgroundColor,
		TextColor:       r.TextColor,
		ButtonColor:     r.ButtonColor,
		OverlayOpacity:  r.OverlayOpacity,
		IsActive:        r.IsActive,
		ShowEmail:       r.ShowEmail,
		ShowPhone:       r.ShowPhone,
		DiscountCode:    r.DiscountCode,
		RedirectURL:     r.RedirectURL,
		ShowCouponPage:  r.ShowCouponPage,
	}
}

// WidgetSettingsGet returns the store's resolved widget presentation.
func WidgetSettingsGet(svc widget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "widget service unavailable"))
			return
		}

		storeID, ok := storeIDParam(w, r, logg)
		if !ok {
			return
		}

		settings, err := svc.GetSettings(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, settings)
	}
}

// WidgetSettingsUpdate merges the provided fields over the stored settings.
func WidgetSettingsUpdate(svc widget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "widget service unavailable"))
			return
		}

		storeID, ok := storeIDParam(w, r, logg)
		if !ok {
			return
		}

		var payload widgetSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settings, err := svc.UpdateSettings(r.Context(), storeID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, settings)
	}
}
