package services

import (
	"context"
	"testing"
	"time"

	"venueops/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingFixture(slots ...*domain.AvailabilitySlot) (*fakeSlotRepo, domain.BookingService) {
	venue := testVenue("venue-1", 30, 30)
	venueRepo := newFakeVenueRepo(venue)
	slotRepo := &fakeSlotRepo{slots: slots}
	scheduling := NewSchedulingService(venueRepo, slotRepo, newFakeOpportunityRepo(), domain.DefaultSchedulePolicy(), 2*time.Second)
	return slotRepo, NewBookingService(slotRepo, venueRepo, scheduling, 2*time.Second)
}

func TestBookingService_CreateSlot(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	existing := confirmedSlot("slot-1", "venue-1", day.Add(14*time.Hour), day.Add(16*time.Hour), strPtr("opp-1"))

	t.Run("clean window inserts", func(t *testing.T) {
		slotRepo, svc := newBookingFixture(existing)
		slot := domain.NewAvailabilitySlot("venue-1", day.Add(10*time.Hour), day.Add(12*time.Hour), domain.StatusTentative, nil, nil, time.Time{}, time.Time{})
		conflicts, err := svc.CreateSlot(ctx, slot)
		require.NoError(t, err)
		assert.Empty(t, conflicts)
		require.Len(t, slotRepo.created, 1)
		assert.Equal(t, "slot-created", slot.ID)
		assert.False(t, slot.CreatedAt.IsZero())
	})

	t.Run("overlapping window refuses and reports conflicts", func(t *testing.T) {
		slotRepo, svc := newBookingFixture(existing)
		slot := domain.NewAvailabilitySlot("venue-1", day.Add(15*time.Hour), day.Add(17*time.Hour), domain.StatusConfirmed, nil, nil, time.Time{}, time.Time{})
		conflicts, err := svc.CreateSlot(ctx, slot)
		require.ErrorIs(t, err, domain.ErrConflictDetected)
		require.Len(t, conflicts, 1)
		assert.Equal(t, domain.ConflictVenueDoubleBooking, conflicts[0].Type)
		assert.Empty(t, slotRepo.created, "nothing written on conflict")
	})

	t.Run("same opportunity may replace its own hold", func(t *testing.T) {
		_, svc := newBookingFixture(existing)
		slot := domain.NewAvailabilitySlot("venue-1", day.Add(15*time.Hour), day.Add(17*time.Hour), domain.StatusConfirmed, strPtr("opp-1"), nil, time.Time{}, time.Time{})
		conflicts, err := svc.CreateSlot(ctx, slot)
		require.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("unknown venue", func(t *testing.T) {
		_, svc := newBookingFixture()
		slot := domain.NewAvailabilitySlot("venue-missing", day.Add(10*time.Hour), day.Add(12*time.Hour), domain.StatusTentative, nil, nil, time.Time{}, time.Time{})
		_, err := svc.CreateSlot(ctx, slot)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, svc := newBookingFixture()
		slot := domain.NewAvailabilitySlot("venue-1", day.Add(10*time.Hour), day.Add(12*time.Hour), domain.BookingStatus("HELD"), nil, nil, time.Time{}, time.Time{})
		_, err := svc.CreateSlot(ctx, slot)
		require.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestBookingService_UpdateSlotStatus(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	existing := confirmedSlot("slot-1", "venue-1", day.Add(14*time.Hour), day.Add(16*time.Hour), nil)

	t.Run("patches status and notes", func(t *testing.T) {
		_, svc := newBookingFixture(existing)
		got, err := svc.UpdateSlotStatus(ctx, "slot-1", domain.StatusBlocked, strPtr("floor repair"))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusBlocked, got.Status)
		require.NotNil(t, got.Notes)
		assert.Equal(t, "floor repair", *got.Notes)
	})

	t.Run("missing slot", func(t *testing.T) {
		_, svc := newBookingFixture()
		_, err := svc.UpdateSlotStatus(ctx, "slot-missing", domain.StatusConfirmed, nil)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, svc := newBookingFixture(existing)
		_, err := svc.UpdateSlotStatus(ctx, "slot-1", domain.BookingStatus("HELD"), nil)
		require.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}
