package leads

import (
	"time"

	"github.com/google/uuid"
)

// LeadDTO is the captured lead payload returned to clients.
type LeadDTO struct {
	ID            uuid.UUID `json:"id"`
	StoreID       uuid.UUID `json:"store_id"`
	Name          string    `json:"name"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	ProductName   string    `json:"product_name"`
	ProductURL    *string   `json:"product_url,omitempty"`
	ProductHandle *string   `json:"product_handle,omitempty"`
	ProductID     *string   `json:"product_id,omitempty"`
	VariantID     *string   `json:"variant_id,omitempty"`
	IsSaved       bool      `json:"is_saved"`
	CreatedAt     time.Time `json:"created_at"`
}

// SubmitResult is the widget's accepted-submission response. It carries the
// usage numbers so the widget can stop rendering once the store fills up.
type SubmitResult struct {
	Lead           *LeadDTO `json:"lead"`
	CurrentUsage   int      `json:"current_usage"`
	MaxAllowed     int      `json:"max_allowed"`
	RemainingLeads int      `json:"remaining_leads"`
}

// LeadListResult is one page of leads with a cursor for the next page.
type LeadListResult struct {
	Leads      []LeadDTO `json:"leads"`
	NextCursor *string   `json:"next_cursor,omitempty"`
}
