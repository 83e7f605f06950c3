package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "venueops/internal/delivery/http/helpers"
	"venueops/internal/domain"
)

// Scheduling endpoints speak epoch milliseconds on the wire. Domain types use
// time.Time; the conversion happens only here at the boundary.

// TimeWindowDTO is a wire-format time range in epoch milliseconds.
type TimeWindowDTO struct {
	StartTime int64 `json:"start_time"`
	EndTime   int64 `json:"end_time"`
}

// SlotDTO is the wire representation of an availability slot.
type SlotDTO struct {
	ID            string  `json:"id"`
	VenueID       string  `json:"venue_id"`
	StartTime     int64   `json:"start_time"`
	EndTime       int64   `json:"end_time"`
	Status        string  `json:"booking_status"`
	OpportunityID *string `json:"opportunity_id,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// DoubleBookingDTO is the wire detail for a VENUE_DOUBLE_BOOKING record.
type DoubleBookingDTO struct {
	Slot        SlotDTO             `json:"slot"`
	Venue       *domain.Venue       `json:"venue,omitempty"`
	Opportunity *domain.Opportunity `json:"opportunity,omitempty"`
}

// ConflictRecordDTO is the wire representation of one classified conflict.
type ConflictRecordDTO struct {
	Type          string            `json:"conflict_type"`
	Window        TimeWindowDTO     `json:"overlap_window"`
	DoubleBooking *DoubleBookingDTO `json:"double_booking,omitempty"`
}

// SuggestionDTO is the wire representation of one alternative slot.
type SuggestionDTO struct {
	StartTime       int64         `json:"start_time"`
	EndTime         int64         `json:"end_time"`
	Venue           *domain.Venue `json:"venue"`
	IsPreferredDate bool          `json:"is_preferred_date"`
}

func newSlotDTO(s *domain.AvailabilitySlot) SlotDTO {
	return SlotDTO{
		ID:            s.ID,
		VenueID:       s.VenueID,
		StartTime:     s.StartTime.UnixMilli(),
		EndTime:       s.EndTime.UnixMilli(),
		Status:        string(s.Status),
		OpportunityID: s.OpportunityID,
		Notes:         s.Notes,
	}
}

func newConflictRecordDTOs(records []domain.ConflictRecord) []ConflictRecordDTO {
	out := make([]ConflictRecordDTO, 0, len(records))
	for _, rec := range records {
		dto := ConflictRecordDTO{
			Type: string(rec.Type),
			Window: TimeWindowDTO{
				StartTime: rec.Window.Start.UnixMilli(),
				EndTime:   rec.Window.End.UnixMilli(),
			},
		}
		if rec.DoubleBooking != nil {
			dto.DoubleBooking = &DoubleBookingDTO{
				Slot:        newSlotDTO(rec.DoubleBooking.Slot),
				Venue:       rec.DoubleBooking.Venue,
				Opportunity: rec.DoubleBooking.Opportunity,
			}
		}
		out = append(out, dto)
	}
	return out
}

// CheckConflictsRequest is the request body for POST /scheduling/conflicts/check.
// Times are epoch milliseconds.
type CheckConflictsRequest struct {
	VenueID              *string `json:"venue_id"`
	StartTime            int64   `json:"start_time"`
	EndTime              int64   `json:"end_time"`
	ExcludeOpportunityID *string `json:"exclude_opportunity_id"`
}

// Validate implements Validator.
func (c CheckConflictsRequest) Validate() []string {
	var errs []string
	if c.StartTime <= 0 {
		errs = append(errs, "start_time is required")
	}
	if c.EndTime <= 0 {
		errs = append(errs, "end_time is required")
	}
	if c.StartTime > 0 && c.EndTime > 0 && c.EndTime <= c.StartTime {
		errs = append(errs, "end_time must be after start_time")
	}
	if c.VenueID != nil && strings.TrimSpace(*c.VenueID) == "" {
		errs = append(errs, "venue_id must not be empty when set")
	}
	return errs
}

// CheckConflictsResponse is the response body for POST /scheduling/conflicts/check.
type CheckConflictsResponse struct {
	HasConflicts bool                `json:"has_conflicts"`
	Conflicts    []ConflictRecordDTO `json:"conflicts"`
}

// SuggestDatesRequest is the request body for POST /scheduling/suggestions.
// PreferredDate is epoch milliseconds; SearchRangeDays defaults when omitted.
type SuggestDatesRequest struct {
	VenueID         string `json:"venue_id"`
	PreferredDate   int64  `json:"preferred_date"`
	DurationMinutes int    `json:"duration_minutes"`
	SearchRangeDays int    `json:"search_range_days"`
}

// Validate implements Validator.
func (s SuggestDatesRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.VenueID) == "" {
		errs = append(errs, "venue_id is required")
	}
	if s.PreferredDate <= 0 {
		errs = append(errs, "preferred_date is required")
	}
	if s.DurationMinutes <= 0 {
		errs = append(errs, "duration_minutes must be positive")
	}
	if s.SearchRangeDays < 0 {
		errs = append(errs, "search_range_days must not be negative")
	}
	return errs
}

// SuggestDatesResponse is the response body for POST /scheduling/suggestions.
type SuggestDatesResponse struct {
	Suggestions []SuggestionDTO `json:"suggestions"`
}

type SchedulingController struct {
	Logger  *slog.Logger
	Service domain.SchedulingService
}

func NewSchedulingController(logger *slog.Logger, svc domain.SchedulingService) *SchedulingController {
	return &SchedulingController{
		Logger:  logger,
		Service: svc,
	}
}

// CheckConflicts godoc
// @Summary Check a time window for booking conflicts
// @Description Classifies CONFIRMED and TENTATIVE slots overlapping the window. Touching endpoints do not overlap. Omit venue_id to check every venue; set exclude_opportunity_id to ignore an opportunity's own holds.
// @Tags scheduling
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CheckConflictsRequest true "Window to check (epoch milliseconds)"
// @Success 200 {object} helpers.APIResponse "data contains has_conflicts and the conflict records"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /scheduling/conflicts/check [post]
func (c *SchedulingController) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	window := domain.TimeRange{
		Start: time.UnixMilli(req.StartTime),
		End:   time.UnixMilli(req.EndTime),
	}
	records, err := c.Service.CheckDateConflicts(r.Context(), req.VenueID, window, req.ExcludeOpportunityID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, CheckConflictsResponse{
		HasConflicts: len(records) > 0,
		Conflicts:    newConflictRecordDTOs(records),
	})
}

// SuggestDates godoc
// @Summary Suggest alternative non-conflicting slots
// @Description Scans the venue's bookable day window around the preferred date and returns conflict-free candidate slots ordered by distance from the preferred date. An unknown venue yields an empty list.
// @Tags scheduling
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SuggestDatesRequest true "Search parameters (epoch milliseconds)"
// @Success 200 {object} helpers.APIResponse "data contains the ordered suggestions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /scheduling/suggestions [post]
func (c *SchedulingController) SuggestDates(w http.ResponseWriter, r *http.Request) {
	var req SuggestDatesRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	preferred := time.UnixMilli(req.PreferredDate)
	duration := time.Duration(req.DurationMinutes) * time.Minute
	suggestions, err := c.Service.SuggestAlternativeDates(r.Context(), req.VenueID, preferred, duration, req.SearchRangeDays)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	out := make([]SuggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, SuggestionDTO{
			StartTime:       s.StartTime.UnixMilli(),
			EndTime:         s.EndTime.UnixMilli(),
			Venue:           s.Venue,
			IsPreferredDate: s.IsPreferredDate,
		})
	}
	h.WriteJSONSuccess(w, http.StatusOK, SuggestDatesResponse{Suggestions: out})
}
