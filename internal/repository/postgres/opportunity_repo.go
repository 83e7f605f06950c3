package postgres

import (
	"context"
	"database/sql"
	"errors"

	"venueops/internal/domain"
)

type opportunityRepository struct {
	DB *sql.DB
}

func NewOpportunityRepository(db *sql.DB) domain.OpportunityRepository {
	return &opportunityRepository{
		DB: db,
	}
}

func (r *opportunityRepository) GetByID(ctx context.Context, id string) (*domain.Opportunity, error) {
	query := `
		SELECT id, name, contact_email, event_date, created_at, updated_at
		FROM opportunities
		WHERE id = $1
	`
	o := &domain.Opportunity{}
	var dateNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.ContactEmail, &dateNull, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if dateNull.Valid {
		o.EventDate = &dateNull.Time
	}
	return o, nil
}
