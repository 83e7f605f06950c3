package domain

import (
	"context"
	"time"
)

// Venue represents a bookable physical space.
// SetupMinutes and CleanupMinutes are turnover buffers applied around every
// booking when probing for conflicts.
// swagger:model Venue
type Venue struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Capacity       int       `json:"capacity"`
	Amenities      []string  `json:"amenities"`
	HourlyRate     *float64  `json:"hourly_rate,omitempty"`
	SetupMinutes   int       `json:"setup_minutes"`
	CleanupMinutes int       `json:"cleanup_minutes"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewVenue returns a new Venue. ID is set by the repository on create.
func NewVenue(name string, capacity, setupMinutes, cleanupMinutes int, amenities []string, hourlyRate *float64, createdAt, updatedAt time.Time) *Venue {
	return &Venue{
		Name:           name,
		Capacity:       capacity,
		Amenities:      amenities,
		HourlyRate:     hourlyRate,
		SetupMinutes:   setupMinutes,
		CleanupMinutes: cleanupMinutes,
		IsActive:       true,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

// Buffer returns the combined setup and cleanup time as a duration.
func (v *Venue) Buffer() time.Duration {
	return time.Duration(v.SetupMinutes+v.CleanupMinutes) * time.Minute
}

// VenueRepository defines the interface for venue storage.
type VenueRepository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	ListActive(ctx context.Context) ([]*Venue, error)
}

// VenueService defines venue administration operations.
type VenueService interface {
	CreateVenue(ctx context.Context, venue *Venue) error
	GetVenue(ctx context.Context, id string) (*Venue, error)
	ListVenues(ctx context.Context) ([]*Venue, error)
}
