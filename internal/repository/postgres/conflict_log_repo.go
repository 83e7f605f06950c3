package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"venueops/internal/domain"
)

type conflictLogRepository struct {
	DB *sql.DB
}

func NewConflictLogRepository(db *sql.DB) domain.ConflictLogRepository {
	return &conflictLogRepository{
		DB: db,
	}
}

const conflictLogColumns = `id, opportunity_id, venue_id, conflict_type, severity, conflict_date, description, is_resolved, resolution_notes, detected_at, resolved_at`

func scanConflictLog(scan func(dest ...any) error) (*domain.ConflictDetectionLog, error) {
	e := &domain.ConflictDetectionLog{}
	var venueNull, descNull, notesNull sql.NullString
	var resolvedNull sql.NullTime
	if err := scan(&e.ID, &e.OpportunityID, &venueNull, &e.Type, &e.Severity, &e.ConflictDate,
		&descNull, &e.IsResolved, &notesNull, &e.DetectedAt, &resolvedNull); err != nil {
		return nil, err
	}
	if venueNull.Valid {
		e.VenueID = &venueNull.String
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if notesNull.Valid {
		e.ResolutionNotes = &notesNull.String
	}
	if resolvedNull.Valid {
		e.ResolvedAt = &resolvedNull.Time
	}
	return e, nil
}

func (r *conflictLogRepository) Create(ctx context.Context, e *domain.ConflictDetectionLog) error {
	query := `
		INSERT INTO conflict_detection_logs (opportunity_id, venue_id, conflict_type, severity, conflict_date, description, is_resolved, detected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.OpportunityID, e.VenueID, e.Type, e.Severity, e.ConflictDate, e.Description, e.IsResolved, e.DetectedAt,
	).Scan(&e.ID)
}

func (r *conflictLogRepository) GetByID(ctx context.Context, id string) (*domain.ConflictDetectionLog, error) {
	query := `SELECT ` + conflictLogColumns + ` FROM conflict_detection_logs WHERE id = $1`
	row := r.DB.QueryRowContext(ctx, query, id)
	e, err := scanConflictLog(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *conflictLogRepository) List(ctx context.Context, filter domain.ConflictLogFilter, p domain.PaginationParams) ([]*domain.ConflictDetectionLog, int, error) {
	where := []string{"TRUE"}
	args := []interface{}{}
	n := 1
	if filter.OpportunityID != nil {
		where = append(where, fmt.Sprintf("opportunity_id = $%d", n))
		args = append(args, *filter.OpportunityID)
		n++
	}
	if filter.VenueID != nil {
		where = append(where, fmt.Sprintf("venue_id = $%d", n))
		args = append(args, *filter.VenueID)
		n++
	}
	if filter.UnresolvedOnly {
		where = append(where, "is_resolved = FALSE")
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM conflict_detection_logs WHERE ` + whereClause
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM conflict_detection_logs
		WHERE %s
		ORDER BY detected_at DESC
		LIMIT $%d OFFSET $%d
	`, conflictLogColumns, whereClause, n, n+1)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	entries := make([]*domain.ConflictDetectionLog, 0)
	for rows.Next() {
		e, err := scanConflictLog(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// MarkResolved overwrites the resolution fields unconditionally, so resolving
// an already-resolved entry re-stamps it.
func (r *conflictLogRepository) MarkResolved(ctx context.Context, id string, notes *string, resolvedAt time.Time) (*domain.ConflictDetectionLog, error) {
	query := `
		UPDATE conflict_detection_logs
		SET is_resolved = TRUE, resolution_notes = $1, resolved_at = $2
		WHERE id = $3
		RETURNING ` + conflictLogColumns
	row := r.DB.QueryRowContext(ctx, query, notes, resolvedAt, id)
	e, err := scanConflictLog(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}
