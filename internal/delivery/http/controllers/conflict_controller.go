package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "venueops/internal/delivery/http/helpers"
	"venueops/internal/domain"
)

// LogConflictRequest is the request body for POST /conflicts. ConflictDate is
// epoch milliseconds.
type LogConflictRequest struct {
	OpportunityID string  `json:"opportunity_id"`
	VenueID       *string `json:"venue_id"`
	ConflictType  string  `json:"conflict_type"`
	Severity      string  `json:"severity"`
	ConflictDate  int64   `json:"conflict_date"`
	Description   *string `json:"description"`
}

// Validate implements Validator.
func (l LogConflictRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.OpportunityID) == "" {
		errs = append(errs, "opportunity_id is required")
	}
	if l.ConflictType == "" {
		errs = append(errs, "conflict_type is required")
	} else if !domain.ValidConflictType(domain.ConflictType(l.ConflictType)) {
		errs = append(errs, "unknown conflict_type")
	}
	if l.Severity == "" {
		errs = append(errs, "severity is required")
	} else if !domain.ValidConflictSeverity(domain.ConflictSeverity(l.Severity)) {
		errs = append(errs, "unknown severity")
	}
	if l.ConflictDate <= 0 {
		errs = append(errs, "conflict_date is required")
	}
	return errs
}

// ResolveConflictRequest is the request body for PATCH /conflicts/{conflictID}/resolve
type ResolveConflictRequest struct {
	ResolutionNotes *string `json:"resolution_notes"`
}

// ListConflictsResponse is the response body for GET /conflicts
type ListConflictsResponse struct {
	Conflicts  []*domain.ConflictDetectionLog `json:"conflicts"`
	Pagination h.PaginationMeta               `json:"pagination"`
}

type ConflictController struct {
	Logger  *slog.Logger
	Service domain.ConflictLogService
}

func NewConflictController(logger *slog.Logger, svc domain.ConflictLogService) *ConflictController {
	return &ConflictController{
		Logger:  logger,
		Service: svc,
	}
}

// LogConflict godoc
// @Summary Record a detected conflict
// @Description Persists an unresolved conflict log entry against an opportunity. HIGH and CRITICAL severities trigger an alert email to the opportunity contact; alert delivery failure does not fail the request.
// @Tags conflicts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body LogConflictRequest true "Conflict data (conflict_date in epoch milliseconds)"
// @Success 201 {object} helpers.APIResponse "data contains the created log entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown opportunity)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conflicts [post]
func (c *ConflictController) LogConflict(w http.ResponseWriter, r *http.Request) {
	var req LogConflictRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	entry := domain.NewConflictDetectionLog(
		strings.TrimSpace(req.OpportunityID),
		req.VenueID,
		domain.ConflictType(req.ConflictType),
		domain.ConflictSeverity(req.Severity),
		time.UnixMilli(req.ConflictDate),
		req.Description,
		time.Now(),
	)
	if err := c.Service.LogConflict(r.Context(), entry); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "opportunity not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, entry)
}

// ResolveConflict godoc
// @Summary Resolve a conflict log entry
// @Description Marks the entry resolved with the given notes. Resolving an already resolved entry overwrites the notes and re-stamps the resolution time.
// @Tags conflicts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conflictID path string true "Conflict log ID"
// @Param body body ResolveConflictRequest true "Resolution notes (optional)"
// @Success 200 {object} helpers.APIResponse "data contains the resolved entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conflicts/{conflictID}/resolve [patch]
func (c *ConflictController) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	conflictID := r.PathValue("conflictID")
	if conflictID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing conflictID")
		return
	}
	var req ResolveConflictRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	entry, err := c.Service.ResolveConflict(r.Context(), conflictID, req.ResolutionNotes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "conflict not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, entry)
}

// ListConflicts godoc
// @Summary List conflict log entries
// @Description Returns conflict log entries newest first, paginated. Filterable by opportunity_id, venue_id, and unresolved_only.
// @Tags conflicts
// @Produce json
// @Security BearerAuth
// @Param opportunity_id query string false "Filter by opportunity"
// @Param venue_id query string false "Filter by venue"
// @Param unresolved_only query boolean false "Only unresolved entries"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains conflicts and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conflicts [get]
func (c *ConflictController) ListConflicts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter domain.ConflictLogFilter
	if v := q.Get("opportunity_id"); v != "" {
		filter.OpportunityID = &v
	}
	if v := q.Get("venue_id"); v != "" {
		filter.VenueID = &v
	}
	if q.Get("unresolved_only") == "true" {
		filter.UnresolvedOnly = true
	}
	params := h.ParsePagination(r)
	entries, total, err := c.Service.ListConflicts(r.Context(), filter, params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, ListConflictsResponse{
		Conflicts:  entries,
		Pagination: h.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}
