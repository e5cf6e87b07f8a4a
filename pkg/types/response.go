package types

// SuccessEnvelope is the standard success body: {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error object inside ErrorEnvelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the standard error body: {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// QuotaRejection is the legacy widget contract for a plan-limit refusal. The
// embedded script matches on these exact field names.
type QuotaRejection struct {
	Success      bool   `json:"success"`
	Reason       string `json:"reason"`
	ErrorMessage string `json:"error"`
	CurrentUsage int    `json:"currentUsage"`
	MaxAllowed   int    `json:"maxAllowed"`
}
