package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"venueops/internal/domain"
)

type schedulingService struct {
	venueRepo       domain.VenueRepository
	slotRepo        domain.SlotRepository
	opportunityRepo domain.OpportunityRepository
	policy          domain.SchedulePolicy
	contextTimeout  time.Duration
}

// NewSchedulingService returns the availability core: conflict classification
// and alternative-slot suggestion. The policy carries the bookable day window,
// the candidate step, and which statuses count as conflicting.
func NewSchedulingService(venueRepo domain.VenueRepository,
	slotRepo domain.SlotRepository,
	opportunityRepo domain.OpportunityRepository,
	policy domain.SchedulePolicy,
	timeout time.Duration,
) domain.SchedulingService {
	return &schedulingService{
		venueRepo:       venueRepo,
		slotRepo:        slotRepo,
		opportunityRepo: opportunityRepo,
		policy:          policy,
		contextTimeout:  timeout,
	}
}

func (s *schedulingService) conflictingStatuses() []domain.BookingStatus {
	statuses := make([]domain.BookingStatus, 0, len(s.policy.ConflictingStatuses))
	for st, ok := range s.policy.ConflictingStatuses {
		if ok {
			statuses = append(statuses, st)
		}
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
	return statuses
}

// CheckDateConflicts returns a conflict record for every CONFIRMED or
// TENTATIVE slot overlapping the candidate window, optionally restricted to
// one venue and excluding slots held by one opportunity. The repository query
// is padded by the policy's prefilter window purely as a retrieval
// optimization; the overlap test here is authoritative for every candidate.
func (s *schedulingService) CheckDateConflicts(ctx context.Context, venueID *string, window domain.TimeRange, excludeOpportunityID *string) ([]domain.ConflictRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	prefilter := domain.TimeRange{
		Start: window.Start.Add(-s.policy.PrefilterPadding),
		End:   window.End.Add(s.policy.PrefilterPadding),
	}
	slots, err := s.slotRepo.Query(ctx, domain.SlotFilter{
		VenueID:   venueID,
		Statuses:  s.conflictingStatuses(),
		TimeRange: &prefilter,
	})
	if err != nil {
		return nil, fmt.Errorf("query slots: %w", err)
	}

	venues := make(map[string]*domain.Venue)
	conflicts := make([]domain.ConflictRecord, 0)
	for _, slot := range slots {
		if !s.policy.Conflicts(slot.Status) {
			continue
		}
		if excludeOpportunityID != nil && slot.OpportunityID != nil && *slot.OpportunityID == *excludeOpportunityID {
			continue
		}
		if !domain.Overlaps(window, slot.Range()) {
			continue
		}

		venue, ok := venues[slot.VenueID]
		if !ok {
			venue, err = s.venueRepo.GetByID(ctx, slot.VenueID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("get venue: %w", err)
			}
			venues[slot.VenueID] = venue
		}

		var opportunity *domain.Opportunity
		if slot.OpportunityID != nil {
			opportunity, err = s.opportunityRepo.GetByID(ctx, *slot.OpportunityID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("get opportunity: %w", err)
			}
		}

		conflicts = append(conflicts, domain.ConflictRecord{
			Type:   domain.ConflictVenueDoubleBooking,
			Window: domain.OverlapWindow(window, slot.Range()),
			DoubleBooking: &domain.DoubleBookingDetail{
				Slot:        slot,
				Venue:       venue,
				Opportunity: opportunity,
			},
		})
	}
	return conflicts, nil
}

// SuggestAlternativeDates enumerates candidate start times across the search
// window and returns the non-conflicting ones sorted by distance from the
// preferred date. Candidates step through each day's bookable window; each
// probe covers the requested duration plus the venue's setup and cleanup
// buffers, so back-to-back bookings with no turnover time are rejected. The
// reported slots cover only the requested duration. An unknown venue yields
// an empty list, not an error.
func (s *schedulingService) SuggestAlternativeDates(ctx context.Context, venueID string, preferredDate time.Time, duration time.Duration, searchRangeDays int) ([]domain.AlternativeDateSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if searchRangeDays <= 0 {
		searchRangeDays = s.policy.SearchRangeDays
	}

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.AlternativeDateSuggestion{}, nil
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}

	windowStart := preferredDate.AddDate(0, 0, -searchRangeDays)
	windowEnd := preferredDate.AddDate(0, 0, searchRangeDays)
	searchWindow := domain.TimeRange{Start: windowStart, End: windowEnd}
	existing, err := s.slotRepo.Query(ctx, domain.SlotFilter{
		VenueID:   &venueID,
		Statuses:  s.conflictingStatuses(),
		TimeRange: &searchWindow,
	})
	if err != nil {
		return nil, fmt.Errorf("query slots: %w", err)
	}

	probe := duration + venue.Buffer()
	step := time.Duration(s.policy.StepMinutes) * time.Minute
	loc := preferredDate.Location()

	suggestions := make([]domain.AlternativeDateSuggestion, 0)
	for day := startOfDay(windowStart, loc); !day.After(windowEnd); day = day.AddDate(0, 0, 1) {
		dayStart := day.Add(time.Duration(s.policy.DayStartHour) * time.Hour)
		dayEnd := day.Add(time.Duration(s.policy.DayEndHour) * time.Hour)

		for t := dayStart; !t.Add(probe).After(dayEnd); t = t.Add(step) {
			candidate := domain.TimeRange{Start: t, End: t.Add(probe)}
			if overlapsAny(candidate, existing, s.policy) {
				continue
			}
			suggestions = append(suggestions, domain.AlternativeDateSuggestion{
				StartTime:       t,
				EndTime:         t.Add(duration),
				Venue:           venue,
				IsPreferredDate: absDistance(t, preferredDate) < s.policy.PreferredWindow,
			})
		}
	}

	// Closest to the preferred date first; generation order (earlier in time)
	// wins among equal distances.
	sort.SliceStable(suggestions, func(i, j int) bool {
		return absDistance(suggestions[i].StartTime, preferredDate) < absDistance(suggestions[j].StartTime, preferredDate)
	})
	return suggestions, nil
}

func overlapsAny(candidate domain.TimeRange, slots []*domain.AvailabilitySlot, policy domain.SchedulePolicy) bool {
	for _, slot := range slots {
		if !policy.Conflicts(slot.Status) {
			continue
		}
		if domain.Overlaps(candidate, slot.Range()) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func absDistance(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}
