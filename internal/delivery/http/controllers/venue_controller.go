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

// CreateVenueRequest is the request body for POST /venues
type CreateVenueRequest struct {
	Name           string   `json:"name"`
	Capacity       int      `json:"capacity"`
	Amenities      []string `json:"amenities"`
	HourlyRate     *float64 `json:"hourly_rate"`
	SetupMinutes   int      `json:"setup_minutes"`
	CleanupMinutes int      `json:"cleanup_minutes"`
}

// Validate implements Validator.
func (c CreateVenueRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Capacity <= 0 {
		errs = append(errs, "capacity must be positive")
	}
	if c.SetupMinutes < 0 {
		errs = append(errs, "setup_minutes must not be negative")
	}
	if c.CleanupMinutes < 0 {
		errs = append(errs, "cleanup_minutes must not be negative")
	}
	if c.HourlyRate != nil && *c.HourlyRate < 0 {
		errs = append(errs, "hourly_rate must not be negative")
	}
	return errs
}

type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateVenue godoc
// @Summary Create a venue
// @Description Creates an active venue. Setup and cleanup minutes are turnover buffers applied around bookings during conflict probes.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateVenueRequest true "Venue data"
// @Success 201 {object} helpers.APIResponse "data contains the created venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [post]
func (c *VenueController) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req CreateVenueRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	venue := domain.NewVenue(strings.TrimSpace(req.Name), req.Capacity, req.SetupMinutes, req.CleanupMinutes, req.Amenities, req.HourlyRate, now, now)
	if err := c.Service.CreateVenue(r.Context(), venue); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// GetVenue godoc
// @Summary Get a venue by ID
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID"
// @Success 200 {object} helpers.APIResponse "data contains the venue"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [get]
func (c *VenueController) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if venueID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing venueID")
		return
	}
	venue, err := c.Service.GetVenue(r.Context(), venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "venue not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venue)
}

// ListVenues godoc
// @Summary List active venues
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the venue list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [get]
func (c *VenueController) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := c.Service.ListVenues(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venues)
}
