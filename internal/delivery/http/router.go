package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "venueops/docs"
	"venueops/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// requireAuth wraps every route except token issuance and the swagger UI.
func NewRouter(
	authController *controllers.AuthController,
	venueController *controllers.VenueController,
	schedulingController *controllers.SchedulingController,
	bookingController *controllers.BookingController,
	conflictController *controllers.ConflictController,
	requireAuth func(http.HandlerFunc) http.HandlerFunc,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /auth/token", authController.IssueToken)

	// Venues
	mux.HandleFunc("POST /venues", requireAuth(venueController.CreateVenue))
	mux.HandleFunc("GET /venues", requireAuth(venueController.ListVenues))
	mux.HandleFunc("GET /venues/{venueID}", requireAuth(venueController.GetVenue))

	// Scheduling queries
	mux.HandleFunc("POST /scheduling/conflicts/check", requireAuth(schedulingController.CheckConflicts))
	mux.HandleFunc("POST /scheduling/suggestions", requireAuth(schedulingController.SuggestDates))

	// Slots
	mux.HandleFunc("POST /slots", requireAuth(bookingController.CreateSlot))
	mux.HandleFunc("PATCH /slots/{slotID}/status", requireAuth(bookingController.UpdateSlotStatus))

	// Conflict log
	mux.HandleFunc("POST /conflicts", requireAuth(conflictController.LogConflict))
	mux.HandleFunc("GET /conflicts", requireAuth(conflictController.ListConflicts))
	mux.HandleFunc("PATCH /conflicts/{conflictID}/resolve", requireAuth(conflictController.ResolveConflict))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
