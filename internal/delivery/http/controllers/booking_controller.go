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

// CreateSlotRequest is the request body for POST /slots. Times are epoch milliseconds.
type CreateSlotRequest struct {
	VenueID       string  `json:"venue_id"`
	StartTime     int64   `json:"start_time"`
	EndTime       int64   `json:"end_time"`
	Status        string  `json:"booking_status"`
	OpportunityID *string `json:"opportunity_id"`
	Notes         *string `json:"notes"`
}

// Validate implements Validator.
func (c CreateSlotRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.VenueID) == "" {
		errs = append(errs, "venue_id is required")
	}
	if c.StartTime <= 0 {
		errs = append(errs, "start_time is required")
	}
	if c.EndTime <= 0 {
		errs = append(errs, "end_time is required")
	}
	if c.StartTime > 0 && c.EndTime > 0 && c.EndTime <= c.StartTime {
		errs = append(errs, "end_time must be after start_time")
	}
	if c.Status == "" {
		errs = append(errs, "booking_status is required")
	}
	return errs
}

// CreateSlotConflictResponse is the 409 response body for POST /slots when the
// requested window collides with existing bookings.
type CreateSlotConflictResponse struct {
	Conflicts []ConflictRecordDTO `json:"conflicts"`
}

// UpdateSlotStatusRequest is the request body for PATCH /slots/{slotID}/status
type UpdateSlotStatusRequest struct {
	Status string  `json:"booking_status"`
	Notes  *string `json:"notes"`
}

// Validate implements Validator.
func (u UpdateSlotStatusRequest) Validate() []string {
	var errs []string
	if u.Status == "" {
		errs = append(errs, "booking_status is required")
	}
	return errs
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSlot godoc
// @Summary Create an availability slot
// @Description Inserts a slot after checking the window for conflicts. A conflicting window is rejected with 409 and the conflict records; nothing is written. An opportunity's own holds do not block its new slot.
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSlotRequest true "Slot data (epoch milliseconds)"
// @Success 201 {object} helpers.APIResponse "data contains the created slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown venue)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict; data contains the conflict records"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots [post]
func (c *BookingController) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	slot := domain.NewAvailabilitySlot(
		strings.TrimSpace(req.VenueID),
		time.UnixMilli(req.StartTime),
		time.UnixMilli(req.EndTime),
		domain.BookingStatus(req.Status),
		req.OpportunityID,
		req.Notes,
		now, now,
	)
	records, err := c.Service.CreateSlot(r.Context(), slot)
	if err != nil {
		if errors.Is(err, domain.ErrConflictDetected) {
			h.WriteJSON(w, http.StatusConflict, h.APIResponse{
				Data:  CreateSlotConflictResponse{Conflicts: newConflictRecordDTOs(records)},
				Error: &h.APIError{Code: h.ErrCodeConflict, Message: "requested window conflicts with existing bookings"},
			})
			return
		}
		if errors.Is(err, domain.ErrInvalidStatus) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "venue not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, newSlotDTO(slot))
}

// UpdateSlotStatus godoc
// @Summary Update a slot's booking status
// @Description Patches the slot status and optional notes. Slots are never deleted; cancellations move them back to AVAILABLE.
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID"
// @Param body body UpdateSlotStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots/{slotID}/status [patch]
func (c *BookingController) UpdateSlotStatus(w http.ResponseWriter, r *http.Request) {
	slotID := r.PathValue("slotID")
	if slotID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing slotID")
		return
	}
	var req UpdateSlotStatusRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	slot, err := c.Service.UpdateSlotStatus(r.Context(), slotID, domain.BookingStatus(req.Status), req.Notes)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "slot not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, newSlotDTO(slot))
}
