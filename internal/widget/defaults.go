package widget

// Default presentation applied when a merchant has not customized a field.
const (
	defaultHeading         = "Get Exclusive Discount!"
	defaultDescription     = "Leave your details and get 20% off your next order"
	defaultButtonText      = "Get My Discount"
	defaultBackgroundColor = "#ffffff"
	defaultTextColor       = "#1f2937"
	defaultButtonColor     = "#3b82f6"
	defaultOverlayOpacity  = 0.8
	defaultDiscountCode    = "SAVE20"
	defaultIsActive        = true
	defaultShowEmail       = true
	defaultShowPhone       = false
	defaultShowCouponPage  = true
)
