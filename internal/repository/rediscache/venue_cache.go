// Package rediscache decorates repositories with Redis read-through caching.
// Venue records change rarely and are read on every conflict check and slot
// search, so they are the one entity worth caching.
package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"venueops/internal/domain"
)

type cachedVenueRepository struct {
	inner  domain.VenueRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedVenueRepository wraps inner with a Redis read-through cache keyed
// by venue ID. A nil client degrades to a pass-through.
func NewCachedVenueRepository(inner domain.VenueRepository, client *redis.Client, ttl time.Duration) domain.VenueRepository {
	return &cachedVenueRepository{inner: inner, client: client, ttl: ttl}
}

func venueKey(id string) string {
	return "venue:" + id
}

func (r *cachedVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	if err := r.inner.Create(ctx, venue); err != nil {
		return err
	}
	if r.client != nil {
		if data, err := json.Marshal(venue); err == nil {
			r.client.Set(ctx, venueKey(venue.ID), data, r.ttl)
		}
	}
	return nil
}

func (r *cachedVenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if r.client != nil {
		if data, err := r.client.Get(ctx, venueKey(id)).Bytes(); err == nil {
			venue := &domain.Venue{}
			if err := json.Unmarshal(data, venue); err == nil {
				return venue, nil
			}
			// Corrupt entry: drop it and fall through to the source.
			r.client.Del(ctx, venueKey(id))
		}
	}
	venue, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.client != nil {
		if data, err := json.Marshal(venue); err == nil {
			r.client.Set(ctx, venueKey(id), data, r.ttl)
		}
	}
	return venue, nil
}

func (r *cachedVenueRepository) ListActive(ctx context.Context) ([]*domain.Venue, error) {
	// List results are not cached.
	return r.inner.ListActive(ctx)
}
