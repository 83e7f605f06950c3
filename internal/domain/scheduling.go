package domain

import (
	"context"
	"time"
)

// SchedulePolicy makes the slot search's business constants explicit instead
// of burying them in the generator: the bookable day window, the candidate
// step size, which statuses count as conflicting, and the windows used for
// prefiltering and preferred-date marking.
type SchedulePolicy struct {
	DayStartHour        int
	DayEndHour          int
	StepMinutes         int
	SearchRangeDays     int
	ConflictingStatuses map[BookingStatus]bool
	PrefilterPadding    time.Duration
	PreferredWindow     time.Duration
}

// DefaultSchedulePolicy returns the stock policy: 09:00-22:00 bookable day,
// hourly candidates, 14-day search range, CONFIRMED and TENTATIVE slots
// conflict. BLOCKED slots are maintenance holds and deliberately do not count
// as double-bookings.
func DefaultSchedulePolicy() SchedulePolicy {
	return SchedulePolicy{
		DayStartHour:    9,
		DayEndHour:      22,
		StepMinutes:     60,
		SearchRangeDays: 14,
		ConflictingStatuses: map[BookingStatus]bool{
			StatusConfirmed: true,
			StatusTentative: true,
		},
		PrefilterPadding: 24 * time.Hour,
		PreferredWindow:  24 * time.Hour,
	}
}

// Conflicts reports whether a slot in the given status counts as a conflict
// under this policy.
func (p SchedulePolicy) Conflicts(status BookingStatus) bool {
	return p.ConflictingStatuses[status]
}

// AlternativeDateSuggestion is a computed, non-conflicting candidate slot.
// StartTime/EndTime cover only the requested duration; the venue's turnover
// buffers were checked for conflicts but are not part of the reported window.
// swagger:model AlternativeDateSuggestion
type AlternativeDateSuggestion struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Venue           *Venue    `json:"venue"`
	IsPreferredDate bool      `json:"is_preferred_date"`
}

// SchedulingService is the availability core: conflict classification over
// existing slots and alternative-slot suggestion. Both are pure queries.
type SchedulingService interface {
	CheckDateConflicts(ctx context.Context, venueID *string, window TimeRange, excludeOpportunityID *string) ([]ConflictRecord, error)
	SuggestAlternativeDates(ctx context.Context, venueID string, preferredDate time.Time, duration time.Duration, searchRangeDays int) ([]AlternativeDateSuggestion, error)
}
