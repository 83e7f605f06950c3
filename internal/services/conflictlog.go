package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"venueops/internal/domain"
)

type conflictLogService struct {
	logRepo         domain.ConflictLogRepository
	opportunityRepo domain.OpportunityRepository
	venueRepo       domain.VenueRepository
	emailService    domain.EmailService
	logger          *slog.Logger
	contextTimeout  time.Duration
}

// NewConflictLogService returns the conflict recording workflow. emailService
// may be nil to disable alert emails.
func NewConflictLogService(logRepo domain.ConflictLogRepository,
	opportunityRepo domain.OpportunityRepository,
	venueRepo domain.VenueRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ConflictLogService {
	return &conflictLogService{
		logRepo:         logRepo,
		opportunityRepo: opportunityRepo,
		venueRepo:       venueRepo,
		emailService:    emailService,
		logger:          logger,
		contextTimeout:  timeout,
	}
}

// LogConflict persists a conflict record against an opportunity. It does not
// run the live classifier; entries are recorded explicitly. HIGH and CRITICAL
// severities additionally trigger a best-effort alert email to the
// opportunity contact; a failed send never fails the write.
func (s *conflictLogService) LogConflict(ctx context.Context, entry *domain.ConflictDetectionLog) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if entry.OpportunityID == "" {
		return fmt.Errorf("opportunity id is required")
	}
	if !domain.ValidConflictType(entry.Type) {
		return fmt.Errorf("unknown conflict type %q", entry.Type)
	}
	if !domain.ValidConflictSeverity(entry.Severity) {
		return fmt.Errorf("unknown severity %q", entry.Severity)
	}

	opportunity, err := s.opportunityRepo.GetByID(ctx, entry.OpportunityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get opportunity: %w", err)
	}

	entry.IsResolved = false
	entry.ResolvedAt = nil
	if entry.DetectedAt.IsZero() {
		entry.DetectedAt = time.Now()
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("create conflict log: %w", err)
	}

	if s.emailService != nil && (entry.Severity == domain.SeverityHigh || entry.Severity == domain.SeverityCritical) {
		s.sendAlert(ctx, entry, opportunity)
	}
	return nil
}

func (s *conflictLogService) sendAlert(ctx context.Context, entry *domain.ConflictDetectionLog, opportunity *domain.Opportunity) {
	if opportunity.ContactEmail == "" {
		return
	}
	venueName := ""
	if entry.VenueID != nil {
		venue, err := s.venueRepo.GetByID(ctx, *entry.VenueID)
		if err == nil {
			venueName = venue.Name
		}
	}
	data := &domain.ConflictAlertEmailData{
		Email:           opportunity.ContactEmail,
		OpportunityName: opportunity.Name,
		VenueName:       venueName,
		ConflictType:    string(entry.Type),
		Severity:        string(entry.Severity),
		ConflictDate:    entry.ConflictDate,
	}
	if err := s.emailService.SendConflictAlert(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "conflict alert email failed", "conflict_id", entry.ID, "err", err)
	}
}

// ResolveConflict marks an entry resolved, overwriting resolvedAt and the
// resolution notes on every call. Resolving an already-resolved entry
// re-stamps it; there is no transition back to unresolved.
func (s *conflictLogService) ResolveConflict(ctx context.Context, id string, resolutionNotes *string) (*domain.ConflictDetectionLog, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	entry, err := s.logRepo.MarkResolved(ctx, id, resolutionNotes, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("resolve conflict: %w", err)
	}
	return entry, nil
}

func (s *conflictLogService) ListConflicts(ctx context.Context, filter domain.ConflictLogFilter, p domain.PaginationParams) ([]*domain.ConflictDetectionLog, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	entries, total, err := s.logRepo.List(ctx, filter, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list conflicts: %w", err)
	}
	if entries == nil {
		entries = []*domain.ConflictDetectionLog{}
	}
	return entries, total, nil
}
