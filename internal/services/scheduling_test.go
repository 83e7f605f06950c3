package services

import (
	"context"
	"testing"
	"time"

	"venueops/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVenueRepo implements domain.VenueRepository for tests.
type fakeVenueRepo struct {
	byID   map[string]*domain.Venue
	getErr error
}

func newFakeVenueRepo(venues ...*domain.Venue) *fakeVenueRepo {
	f := &fakeVenueRepo{byID: make(map[string]*domain.Venue)}
	for _, v := range venues {
		f.byID[v.ID] = v
	}
	return f
}

func (f *fakeVenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	v.ID = "venue-created"
	f.byID[v.ID] = v
	return nil
}

func (f *fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if v, ok := f.byID[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVenueRepo) ListActive(ctx context.Context) ([]*domain.Venue, error) {
	out := make([]*domain.Venue, 0, len(f.byID))
	for _, v := range f.byID {
		if v.IsActive {
			out = append(out, v)
		}
	}
	return out, nil
}

// fakeSlotRepo implements domain.SlotRepository for tests. Query applies the
// filter the way the Postgres repository does: venue and status match plus a
// coarse range intersection.
type fakeSlotRepo struct {
	slots     []*domain.AvailabilitySlot
	queryErr  error
	createErr error
	created   []*domain.AvailabilitySlot
}

func (f *fakeSlotRepo) Create(ctx context.Context, s *domain.AvailabilitySlot) error {
	if f.createErr != nil {
		return f.createErr
	}
	s.ID = "slot-created"
	f.slots = append(f.slots, s)
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error) {
	for _, s := range f.slots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSlotRepo) Query(ctx context.Context, filter domain.SlotFilter) ([]*domain.AvailabilitySlot, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []*domain.AvailabilitySlot
	for _, s := range f.slots {
		if filter.VenueID != nil && s.VenueID != *filter.VenueID {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, st := range filter.Statuses {
				if s.Status == st {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if filter.TimeRange != nil {
			if !s.EndTime.After(filter.TimeRange.Start) || !s.StartTime.Before(filter.TimeRange.End) {
				continue
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSlotRepo) Patch(ctx context.Context, id string, patch domain.SlotPatch) (*domain.AvailabilitySlot, error) {
	for _, s := range f.slots {
		if s.ID != id {
			continue
		}
		if patch.Status != nil {
			s.Status = *patch.Status
		}
		if patch.OpportunityID != nil {
			s.OpportunityID = patch.OpportunityID
		}
		if patch.Notes != nil {
			s.Notes = patch.Notes
		}
		s.UpdatedAt = time.Now()
		return s, nil
	}
	return nil, domain.ErrNotFound
}

// fakeOpportunityRepo implements domain.OpportunityRepository for tests.
type fakeOpportunityRepo struct {
	byID map[string]*domain.Opportunity
}

func newFakeOpportunityRepo(opps ...*domain.Opportunity) *fakeOpportunityRepo {
	f := &fakeOpportunityRepo{byID: make(map[string]*domain.Opportunity)}
	for _, o := range opps {
		f.byID[o.ID] = o
	}
	return f
}

func (f *fakeOpportunityRepo) GetByID(ctx context.Context, id string) (*domain.Opportunity, error) {
	if o, ok := f.byID[id]; ok {
		return o, nil
	}
	return nil, domain.ErrNotFound
}

func strPtr(s string) *string { return &s }

func testVenue(id string, setupMinutes, cleanupMinutes int) *domain.Venue {
	return &domain.Venue{
		ID:             id,
		Name:           "Grand Hall",
		Capacity:       200,
		SetupMinutes:   setupMinutes,
		CleanupMinutes: cleanupMinutes,
		IsActive:       true,
	}
}

func confirmedSlot(id, venueID string, start, end time.Time, opportunityID *string) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		ID:            id,
		VenueID:       venueID,
		StartTime:     start,
		EndTime:       end,
		Status:        domain.StatusConfirmed,
		OpportunityID: opportunityID,
	}
}

func TestSchedulingService_CheckDateConflicts(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	venueID := "venue-1"
	venue := testVenue(venueID, 30, 30)
	opp := &domain.Opportunity{ID: "opp-1", Name: "Summer Gala", ContactEmail: "gala@example.com"}
	booking := confirmedSlot("slot-1", venueID, day.Add(14*time.Hour), day.Add(16*time.Hour), strPtr("opp-1"))

	newService := func(slots ...*domain.AvailabilitySlot) domain.SchedulingService {
		return NewSchedulingService(
			newFakeVenueRepo(venue),
			&fakeSlotRepo{slots: slots},
			newFakeOpportunityRepo(opp),
			domain.DefaultSchedulePolicy(),
			2*time.Second,
		)
	}

	t.Run("no overlap returns empty", func(t *testing.T) {
		svc := newService(booking)
		got, err := svc.CheckDateConflicts(ctx, &venueID, domain.NewTimeRange(day.Add(10*time.Hour), day.Add(12*time.Hour)), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("overlap returns typed record with window and lookups", func(t *testing.T) {
		svc := newService(booking)
		got, err := svc.CheckDateConflicts(ctx, &venueID, domain.NewTimeRange(day.Add(15*time.Hour), day.Add(17*time.Hour)), nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		rec := got[0]
		assert.Equal(t, domain.ConflictVenueDoubleBooking, rec.Type)
		assert.Equal(t, day.Add(15*time.Hour), rec.Window.Start)
		assert.Equal(t, day.Add(16*time.Hour), rec.Window.End)
		require.NotNil(t, rec.DoubleBooking)
		assert.Equal(t, "slot-1", rec.DoubleBooking.Slot.ID)
		assert.Equal(t, venue, rec.DoubleBooking.Venue)
		assert.Equal(t, opp, rec.DoubleBooking.Opportunity)
	})

	t.Run("touching boundary is not a conflict", func(t *testing.T) {
		svc := newService(booking)
		got, err := svc.CheckDateConflicts(ctx, &venueID, domain.NewTimeRange(day.Add(16*time.Hour), day.Add(18*time.Hour)), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("excluded opportunity is skipped", func(t *testing.T) {
		svc := newService(booking)
		got, err := svc.CheckDateConflicts(ctx, &venueID, domain.NewTimeRange(day.Add(15*time.Hour), day.Add(17*time.Hour)), strPtr("opp-1"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("available and blocked slots never conflict", func(t *testing.T) {
		available := &domain.AvailabilitySlot{ID: "slot-a", VenueID: venueID, StartTime: day.Add(14 * time.Hour), EndTime: day.Add(16 * time.Hour), Status: domain.StatusAvailable}
		blocked := &domain.AvailabilitySlot{ID: "slot-b", VenueID: venueID, StartTime: day.Add(14 * time.Hour), EndTime: day.Add(16 * time.Hour), Status: domain.StatusBlocked}
		svc := newService(available, blocked)
		got, err := svc.CheckDateConflicts(ctx, &venueID, domain.NewTimeRange(day.Add(14*time.Hour), day.Add(16*time.Hour)), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("tentative slots conflict", func(t *testing.T) {
		tentative := &domain.AvailabilitySlot{ID: "slot-t", VenueID: venueID, StartTime: day.Add(14 * time.Hour), EndTime: day.Add(16 * time.Hour), Status: domain.StatusTentative}
		svc := newService(tentative)
		got, err := svc.CheckDateConflicts(ctx, &venueID, domain.NewTimeRange(day.Add(15*time.Hour), day.Add(17*time.Hour)), nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("nil venue filter scans all venues", func(t *testing.T) {
		other := confirmedSlot("slot-2", "venue-2", day.Add(14*time.Hour), day.Add(16*time.Hour), nil)
		svc := newService(booking, other)
		got, err := svc.CheckDateConflicts(ctx, nil, domain.NewTimeRange(day.Add(15*time.Hour), day.Add(17*time.Hour)), nil)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("idempotent with no intervening writes", func(t *testing.T) {
		svc := newService(booking)
		window := domain.NewTimeRange(day.Add(15*time.Hour), day.Add(17*time.Hour))
		first, err := svc.CheckDateConflicts(ctx, &venueID, window, nil)
		require.NoError(t, err)
		second, err := svc.CheckDateConflicts(ctx, &venueID, window, nil)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestSchedulingService_SuggestAlternativeDates_UnknownVenue(t *testing.T) {
	svc := NewSchedulingService(
		newFakeVenueRepo(),
		&fakeSlotRepo{},
		newFakeOpportunityRepo(),
		domain.DefaultSchedulePolicy(),
		2*time.Second,
	)
	got, err := svc.SuggestAlternativeDates(context.Background(), "missing", time.Now(), 2*time.Hour, 1)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// Venue with 30min setup and 30min cleanup, an existing CONFIRMED booking
// 14:00-16:00. With a 30-minute candidate step the 13:00 and 13:30 starts
// collide through the buffer and 16:30 is the first clean post-buffer start
// inside the bookable day.
func TestSchedulingService_SuggestAlternativeDates_BufferScenario(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	preferred := day.Add(12 * time.Hour)
	venue := testVenue("venue-1", 30, 30)
	booking := confirmedSlot("slot-1", "venue-1", day.Add(14*time.Hour), day.Add(16*time.Hour), nil)

	policy := domain.DefaultSchedulePolicy()
	policy.StepMinutes = 30
	svc := NewSchedulingService(
		newFakeVenueRepo(venue),
		&fakeSlotRepo{slots: []*domain.AvailabilitySlot{booking}},
		newFakeOpportunityRepo(),
		policy,
		2*time.Second,
	)

	got, err := svc.SuggestAlternativeDates(ctx, "venue-1", preferred, 2*time.Hour, 1)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	starts := make(map[time.Time]bool, len(got))
	for _, s := range got {
		starts[s.StartTime] = true
	}
	assert.False(t, starts[day.Add(13*time.Hour)], "13:00 start collides via buffer")
	assert.False(t, starts[day.Add(13*time.Hour+30*time.Minute)], "13:30 start collides via buffer")
	assert.True(t, starts[day.Add(16*time.Hour+30*time.Minute)], "16:30 start is clean post-buffer")

	buffer := venue.Buffer()
	for _, s := range got {
		// Reported window covers only the requested duration.
		assert.Equal(t, 2*time.Hour, s.EndTime.Sub(s.StartTime))
		assert.Equal(t, venue, s.Venue)
		// No suggestion's buffered window overlaps the existing booking.
		probe := domain.NewTimeRange(s.StartTime, s.StartTime.Add(2*time.Hour+buffer))
		assert.False(t, domain.Overlaps(probe, booking.Range()), "suggestion %v overlaps booking", s.StartTime)
		// Every slot fits the 09:00-22:00 bookable day.
		local := s.StartTime
		assert.GreaterOrEqual(t, local.Hour(), 9)
		assert.False(t, s.StartTime.Add(2*time.Hour+buffer).After(time.Date(local.Year(), local.Month(), local.Day(), 22, 0, 0, 0, time.UTC)))
	}
}

func TestSchedulingService_SuggestAlternativeDates_Ordering(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	preferred := day.Add(12 * time.Hour)
	venue := testVenue("venue-1", 0, 0)

	svc := NewSchedulingService(
		newFakeVenueRepo(venue),
		&fakeSlotRepo{},
		newFakeOpportunityRepo(),
		domain.DefaultSchedulePolicy(),
		2*time.Second,
	)

	got, err := svc.SuggestAlternativeDates(ctx, "venue-1", preferred, 2*time.Hour, 1)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	// Closest-first ordering, earlier start winning ties.
	prev := time.Duration(-1)
	for _, s := range got {
		d := s.StartTime.Sub(preferred)
		if d < 0 {
			d = -d
		}
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
	assert.Equal(t, day.Add(12*time.Hour), got[0].StartTime)
	// 11:00 and 13:00 are equidistant; generation order puts 11:00 first.
	assert.Equal(t, day.Add(11*time.Hour), got[1].StartTime)
	assert.Equal(t, day.Add(13*time.Hour), got[2].StartTime)

	for _, s := range got {
		d := s.StartTime.Sub(preferred)
		if d < 0 {
			d = -d
		}
		assert.Equal(t, d < 24*time.Hour, s.IsPreferredDate)
	}
}

func TestSchedulingService_SuggestAlternativeDates_DefaultSearchRange(t *testing.T) {
	ctx := context.Background()
	preferred := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	venue := testVenue("venue-1", 0, 0)

	svc := NewSchedulingService(
		newFakeVenueRepo(venue),
		&fakeSlotRepo{},
		newFakeOpportunityRepo(),
		domain.DefaultSchedulePolicy(),
		2*time.Second,
	)

	got, err := svc.SuggestAlternativeDates(ctx, "venue-1", preferred, 2*time.Hour, 0)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	// Suggestions span the default 14-day range on both sides.
	var min, max time.Time
	for i, s := range got {
		if i == 0 || s.StartTime.Before(min) {
			min = s.StartTime
		}
		if s.StartTime.After(max) {
			max = s.StartTime
		}
	}
	assert.True(t, min.Before(preferred.AddDate(0, 0, -13)))
	assert.True(t, max.After(preferred.AddDate(0, 0, 13)))
}
