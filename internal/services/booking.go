package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venueops/internal/domain"
)

type bookingService struct {
	slotRepo       domain.SlotRepository
	venueRepo      domain.VenueRepository
	scheduling     domain.SchedulingService
	contextTimeout time.Duration
}

// NewBookingService returns the slot write path.
func NewBookingService(slotRepo domain.SlotRepository,
	venueRepo domain.VenueRepository,
	scheduling domain.SchedulingService,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		slotRepo:       slotRepo,
		venueRepo:      venueRepo,
		scheduling:     scheduling,
		contextTimeout: timeout,
	}
}

// CreateSlot inserts a slot after running the conflict check. On conflict the
// records are returned alongside ErrConflictDetected and nothing is written.
// The check and the insert are separate statements: a second caller can book
// between them, and callers needing exclusivity must serialize the sequence
// at the persistence layer.
func (s *bookingService) CreateSlot(ctx context.Context, slot *domain.AvailabilitySlot) ([]domain.ConflictRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidBookingStatus(slot.Status) {
		return nil, domain.ErrInvalidStatus
	}
	if _, err := s.venueRepo.GetByID(ctx, slot.VenueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}

	conflicts, err := s.scheduling.CheckDateConflicts(ctx, &slot.VenueID, slot.Range(), slot.OpportunityID)
	if err != nil {
		return nil, fmt.Errorf("check conflicts: %w", err)
	}
	if len(conflicts) > 0 {
		return conflicts, domain.ErrConflictDetected
	}

	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}
	return nil, nil
}

// UpdateSlotStatus patches a slot's status, optionally replacing its notes.
func (s *bookingService) UpdateSlotStatus(ctx context.Context, slotID string, status domain.BookingStatus, notes *string) (*domain.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidBookingStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	slot, err := s.slotRepo.Patch(ctx, slotID, domain.SlotPatch{Status: &status, Notes: notes})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("patch slot: %w", err)
	}
	return slot, nil
}
