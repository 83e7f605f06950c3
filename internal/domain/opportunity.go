package domain

import (
	"context"
	"time"
)

// Opportunity is a sales-pipeline deal that may hold venue bookings. Only the
// fields the scheduling core needs are modeled here; the wider CRM owns the
// rest of the record.
type Opportunity struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	EventDate    *time.Time `json:"event_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OpportunityRepository defines read access to opportunities.
type OpportunityRepository interface {
	GetByID(ctx context.Context, id string) (*Opportunity, error)
}
