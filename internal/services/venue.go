package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venueops/internal/domain"
)

type venueService struct {
	venueRepo      domain.VenueRepository
	contextTimeout time.Duration
}

// NewVenueService returns venue administration operations.
func NewVenueService(venueRepo domain.VenueRepository, timeout time.Duration) domain.VenueService {
	return &venueService{venueRepo: venueRepo, contextTimeout: timeout}
}

func (s *venueService) CreateVenue(ctx context.Context, venue *domain.Venue) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if venue.Name == "" {
		return fmt.Errorf("venue name is required")
	}
	if venue.Capacity <= 0 {
		return fmt.Errorf("venue capacity must be positive")
	}
	if venue.SetupMinutes < 0 || venue.CleanupMinutes < 0 {
		return fmt.Errorf("turnover buffers must not be negative")
	}

	now := time.Now()
	venue.CreatedAt = now
	venue.UpdatedAt = now
	venue.IsActive = true
	return s.venueRepo.Create(ctx, venue)
}

func (s *venueService) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venues, err := s.venueRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	if venues == nil {
		venues = []*domain.Venue{}
	}
	return venues, nil
}
