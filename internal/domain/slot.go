package domain

import (
	"context"
	"time"
)

// BookingStatus is the lifecycle state of an availability slot.
type BookingStatus string

const (
	StatusAvailable BookingStatus = "AVAILABLE"
	StatusTentative BookingStatus = "TENTATIVE"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusBlocked   BookingStatus = "BLOCKED"
)

// ValidBookingStatus reports whether s is one of the known statuses.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusAvailable, StatusTentative, StatusConfirmed, StatusBlocked:
		return true
	}
	return false
}

// AvailabilitySlot is a scheduled or held time range against a venue.
// Slots are a historical record: they are status-patched, never deleted.
// swagger:model AvailabilitySlot
type AvailabilitySlot struct {
	ID            string        `json:"id"`
	VenueID       string        `json:"venue_id"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       time.Time     `json:"end_time"`
	Status        BookingStatus `json:"booking_status"`
	OpportunityID *string       `json:"opportunity_id,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewAvailabilitySlot returns a new slot. ID is set by the repository on create.
func NewAvailabilitySlot(venueID string, start, end time.Time, status BookingStatus, opportunityID, notes *string, createdAt, updatedAt time.Time) *AvailabilitySlot {
	return &AvailabilitySlot{
		VenueID:       venueID,
		StartTime:     start,
		EndTime:       end,
		Status:        status,
		OpportunityID: opportunityID,
		Notes:         notes,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// IsBooked reports whether the slot is a firm booking (CONFIRMED only).
func (s *AvailabilitySlot) IsBooked() bool {
	return s.Status == StatusConfirmed
}

// Range returns the slot's booked window.
func (s *AvailabilitySlot) Range() TimeRange {
	return TimeRange{Start: s.StartTime, End: s.EndTime}
}

// SlotFilter narrows a slot query. Nil fields are ignored. TimeRange is a
// coarse retrieval prefilter only; callers still apply the authoritative
// overlap test to every returned slot.
type SlotFilter struct {
	VenueID   *string
	Statuses  []BookingStatus
	TimeRange *TimeRange
}

// SlotPatch holds the mutable slot fields for a partial update. Nil fields
// are left unchanged.
type SlotPatch struct {
	Status        *BookingStatus
	OpportunityID *string
	Notes         *string
}

// SlotRepository defines the interface for availability slot storage.
type SlotRepository interface {
	Create(ctx context.Context, slot *AvailabilitySlot) error
	GetByID(ctx context.Context, id string) (*AvailabilitySlot, error)
	Query(ctx context.Context, filter SlotFilter) ([]*AvailabilitySlot, error)
	Patch(ctx context.Context, id string, patch SlotPatch) (*AvailabilitySlot, error)
}

// BookingService defines the slot write path. CreateSlot checks for conflicts
// before inserting; there is no lock between the check and the write, so
// callers needing exclusivity must serialize at the persistence layer.
type BookingService interface {
	CreateSlot(ctx context.Context, slot *AvailabilitySlot) ([]ConflictRecord, error)
	UpdateSlotStatus(ctx context.Context, slotID string, status BookingStatus, notes *string) (*AvailabilitySlot, error)
}
