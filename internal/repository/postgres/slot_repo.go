package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"venueops/internal/domain"
)

type slotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(db *sql.DB) domain.SlotRepository {
	return &slotRepository{
		DB: db,
	}
}

const slotColumns = `id, venue_id, start_time, end_time, booking_status, opportunity_id, notes, created_at, updated_at`

func scanSlot(scan func(dest ...any) error) (*domain.AvailabilitySlot, error) {
	s := &domain.AvailabilitySlot{}
	var oppNull, notesNull sql.NullString
	if err := scan(&s.ID, &s.VenueID, &s.StartTime, &s.EndTime, &s.Status,
		&oppNull, &notesNull, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if oppNull.Valid {
		s.OpportunityID = &oppNull.String
	}
	if notesNull.Valid {
		s.Notes = &notesNull.String
	}
	return s, nil
}

func (r *slotRepository) Create(ctx context.Context, s *domain.AvailabilitySlot) error {
	query := `
		INSERT INTO availability_slots (venue_id, start_time, end_time, booking_status, opportunity_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.VenueID, s.StartTime, s.EndTime, s.Status, s.OpportunityID, s.Notes, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
}

func (r *slotRepository) GetByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error) {
	query := `SELECT ` + slotColumns + ` FROM availability_slots WHERE id = $1`
	row := r.DB.QueryRowContext(ctx, query, id)
	s, err := scanSlot(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// Query filters slots by venue, status set, and a coarse time-range
// intersection. The range match keeps any slot touching the window; callers
// apply the precise overlap rule themselves.
func (r *slotRepository) Query(ctx context.Context, filter domain.SlotFilter) ([]*domain.AvailabilitySlot, error) {
	where := []string{"TRUE"}
	args := []interface{}{}
	n := 1
	if filter.VenueID != nil {
		where = append(where, fmt.Sprintf("venue_id = $%d", n))
		args = append(args, *filter.VenueID)
		n++
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, fmt.Sprintf("booking_status = ANY($%d)", n))
		args = append(args, pq.Array(statuses))
		n++
	}
	if filter.TimeRange != nil {
		where = append(where, fmt.Sprintf("end_time > $%d AND start_time < $%d", n, n+1))
		args = append(args, filter.TimeRange.Start, filter.TimeRange.End)
		n += 2
	}
	query := fmt.Sprintf(`
		SELECT %s FROM availability_slots
		WHERE %s
		ORDER BY start_time
	`, slotColumns, strings.Join(where, " AND "))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]*domain.AvailabilitySlot, 0)
	for rows.Next() {
		s, err := scanSlot(rows.Scan)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *slotRepository) Patch(ctx context.Context, id string, patch domain.SlotPatch) (*domain.AvailabilitySlot, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if patch.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("booking_status = $%d", n))
		args = append(args, *patch.Status)
		n++
	}
	if patch.OpportunityID != nil {
		setClauses = append(setClauses, fmt.Sprintf("opportunity_id = $%d", n))
		args = append(args, *patch.OpportunityID)
		n++
	}
	if patch.Notes != nil {
		setClauses = append(setClauses, fmt.Sprintf("notes = $%d", n))
		args = append(args, *patch.Notes)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE availability_slots SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, slotColumns)
	row := r.DB.QueryRowContext(ctx, query, args...)
	s, err := scanSlot(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}
