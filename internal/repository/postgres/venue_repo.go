package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"venueops/internal/domain"
)

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{
		DB: db,
	}
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (name, capacity, amenities, hourly_rate, setup_minutes, cleanup_minutes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		v.Name, v.Capacity, pq.Array(v.Amenities), v.HourlyRate,
		v.SetupMinutes, v.CleanupMinutes, v.IsActive, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID)
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `
		SELECT id, name, capacity, amenities, hourly_rate, setup_minutes, cleanup_minutes, is_active, created_at, updated_at
		FROM venues
		WHERE id = $1
	`
	v := &domain.Venue{}
	var rateNull sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Capacity, pq.Array(&v.Amenities), &rateNull,
		&v.SetupMinutes, &v.CleanupMinutes, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if rateNull.Valid {
		v.HourlyRate = &rateNull.Float64
	}
	return v, nil
}

func (r *venueRepository) ListActive(ctx context.Context) ([]*domain.Venue, error) {
	query := `
		SELECT id, name, capacity, amenities, hourly_rate, setup_minutes, cleanup_minutes, is_active, created_at, updated_at
		FROM venues
		WHERE is_active = TRUE
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v := &domain.Venue{}
		var rateNull sql.NullFloat64
		if err := rows.Scan(&v.ID, &v.Name, &v.Capacity, pq.Array(&v.Amenities), &rateNull,
			&v.SetupMinutes, &v.CleanupMinutes, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		if rateNull.Valid {
			v.HourlyRate = &rateNull.Float64
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
