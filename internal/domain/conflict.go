package domain

import (
	"context"
	"time"
)

// ConflictType classifies a detected or recorded conflict.
type ConflictType string

const (
	ConflictVenueDoubleBooking ConflictType = "VENUE_DOUBLE_BOOKING"
	ConflictResource           ConflictType = "RESOURCE_CONFLICT"
	ConflictStaffUnavailable   ConflictType = "STAFF_UNAVAILABLE"
	ConflictTimeOverlap        ConflictType = "TIME_OVERLAP"
)

// ValidConflictType reports whether t is one of the known conflict types.
func ValidConflictType(t ConflictType) bool {
	switch t {
	case ConflictVenueDoubleBooking, ConflictResource, ConflictStaffUnavailable, ConflictTimeOverlap:
		return true
	}
	return false
}

// ConflictSeverity grades how disruptive a conflict is.
type ConflictSeverity string

const (
	SeverityLow      ConflictSeverity = "LOW"
	SeverityMedium   ConflictSeverity = "MEDIUM"
	SeverityHigh     ConflictSeverity = "HIGH"
	SeverityCritical ConflictSeverity = "CRITICAL"
)

// ValidConflictSeverity reports whether s is one of the known severities.
func ValidConflictSeverity(s ConflictSeverity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// DoubleBookingDetail carries the fields specific to a VENUE_DOUBLE_BOOKING
// conflict: the offending slot, its venue, and the opportunity holding it.
type DoubleBookingDetail struct {
	Slot        *AvailabilitySlot `json:"slot"`
	Venue       *Venue            `json:"venue,omitempty"`
	Opportunity *Opportunity      `json:"opportunity,omitempty"`
}

// ConflictRecord is a transient classification result. Type tags which detail
// field is populated; only DoubleBooking exists today, but the shape keeps
// future conflict kinds from sharing loosely typed optional fields.
type ConflictRecord struct {
	Type          ConflictType         `json:"conflict_type"`
	Window        TimeRange            `json:"overlap_window"`
	DoubleBooking *DoubleBookingDetail `json:"double_booking,omitempty"`
}

// ConflictDetectionLog is the persisted record of a detected conflict tied to
// an opportunity. Resolution is one-way: unresolved to resolved.
// swagger:model ConflictDetectionLog
type ConflictDetectionLog struct {
	ID              string           `json:"id"`
	OpportunityID   string           `json:"opportunity_id"`
	VenueID         *string          `json:"venue_id,omitempty"`
	Type            ConflictType     `json:"conflict_type"`
	Severity        ConflictSeverity `json:"severity"`
	ConflictDate    time.Time        `json:"conflict_date"`
	Description     *string          `json:"description,omitempty"`
	IsResolved      bool             `json:"is_resolved"`
	ResolutionNotes *string          `json:"resolution_notes,omitempty"`
	DetectedAt      time.Time        `json:"detected_at"`
	ResolvedAt      *time.Time       `json:"resolved_at,omitempty"`
}

// NewConflictDetectionLog returns an unresolved log entry. ID is set by the
// repository on create.
func NewConflictDetectionLog(opportunityID string, venueID *string, conflictType ConflictType, severity ConflictSeverity, conflictDate time.Time, description *string, detectedAt time.Time) *ConflictDetectionLog {
	return &ConflictDetectionLog{
		OpportunityID: opportunityID,
		VenueID:       venueID,
		Type:          conflictType,
		Severity:      severity,
		ConflictDate:  conflictDate,
		Description:   description,
		IsResolved:    false,
		DetectedAt:    detectedAt,
	}
}

// ConflictLogFilter narrows a conflict log query. Nil fields are ignored.
type ConflictLogFilter struct {
	OpportunityID  *string
	VenueID        *string
	UnresolvedOnly bool
}

// ConflictLogRepository defines the interface for conflict log storage.
type ConflictLogRepository interface {
	Create(ctx context.Context, entry *ConflictDetectionLog) error
	GetByID(ctx context.Context, id string) (*ConflictDetectionLog, error)
	List(ctx context.Context, filter ConflictLogFilter, p PaginationParams) ([]*ConflictDetectionLog, int, error)
	MarkResolved(ctx context.Context, id string, resolutionNotes *string, resolvedAt time.Time) (*ConflictDetectionLog, error)
}

// ConflictLogService defines the conflict recording workflow. It is decoupled
// from the live classifier query: entries are logged explicitly.
type ConflictLogService interface {
	LogConflict(ctx context.Context, entry *ConflictDetectionLog) error
	ResolveConflict(ctx context.Context, id string, resolutionNotes *string) (*ConflictDetectionLog, error)
	ListConflicts(ctx context.Context, filter ConflictLogFilter, p PaginationParams) ([]*ConflictDetectionLog, int, error)
}
