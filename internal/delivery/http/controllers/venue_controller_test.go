package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"venueops/internal/delivery/http/helpers"
	"venueops/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVenueService implements domain.VenueService for handler tests.
type fakeVenueService struct {
	createErr   error
	getErr      error
	getResult   *domain.Venue
	listErr     error
	listResult  []*domain.Venue
	lastCreated *domain.Venue
	lastGetID   string
}

func (f *fakeVenueService) CreateVenue(ctx context.Context, venue *domain.Venue) error {
	f.lastCreated = venue
	if f.createErr != nil {
		return f.createErr
	}
	venue.ID = "venue-created"
	return nil
}

func (f *fakeVenueService) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	f.lastGetID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeVenueService) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func TestVenueController_CreateVenue(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fake           *fakeVenueService
		wantStatus     int
		wantBodySubstr string
		check          func(t *testing.T, fake *fakeVenueService, venue domain.Venue)
	}{
		{
			name:       "success",
			body:       `{"name":"Grand Ballroom","capacity":300,"amenities":["stage","av"],"hourly_rate":250,"setup_minutes":60,"cleanup_minutes":30}`,
			fake:       &fakeVenueService{},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, fake *fakeVenueService, venue domain.Venue) {
				assert.Equal(t, "venue-created", venue.ID)
				assert.Equal(t, "Grand Ballroom", venue.Name)
				assert.Equal(t, 300, venue.Capacity)
				assert.Equal(t, []string{"stage", "av"}, venue.Amenities)
				require.NotNil(t, venue.HourlyRate)
				assert.Equal(t, 250.0, *venue.HourlyRate)
				assert.Equal(t, 60, venue.SetupMinutes)
				assert.Equal(t, 30, venue.CleanupMinutes)
				assert.True(t, venue.IsActive)
			},
		},
		{
			name:           "missing name",
			body:           `{"capacity":300}`,
			fake:           &fakeVenueService{},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "name is required",
		},
		{
			name:           "zero capacity",
			body:           `{"name":"Hall","capacity":0}`,
			fake:           &fakeVenueService{},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "capacity must be positive",
		},
		{
			name:           "negative setup minutes",
			body:           `{"name":"Hall","capacity":10,"setup_minutes":-5}`,
			fake:           &fakeVenueService{},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "setup_minutes must not be negative",
		},
		{
			name:           "unknown field rejected",
			body:           `{"name":"Hall","capacity":10,"id":"custom"}`,
			fake:           &fakeVenueService{},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "unknown field",
		},
		{
			name:           "service error",
			body:           `{"name":"Hall","capacity":10}`,
			fake:           &fakeVenueService{createErr: errors.New("db error")},
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewVenueController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodPost, "/venues", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.CreateVenue(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantBodySubstr != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBodySubstr)
			}
			if tt.check != nil {
				var envelope struct {
					Data  domain.Venue      `json:"data"`
					Error *helpers.APIError `json:"error"`
				}
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.Nil(t, envelope.Error)
				tt.check(t, tt.fake, envelope.Data)
			}
		})
	}
}

func TestVenueController_GetVenue(t *testing.T) {
	tests := []struct {
		name           string
		venueID        string
		fake           *fakeVenueService
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:           "found",
			venueID:        "venue-1",
			fake:           &fakeVenueService{getResult: &domain.Venue{ID: "venue-1", Name: "Main Hall"}},
			wantStatus:     http.StatusOK,
			wantBodySubstr: "Main Hall",
		},
		{
			name:           "not found",
			venueID:        "venue-missing",
			fake:           &fakeVenueService{getErr: domain.ErrNotFound},
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "venue not found",
		},
		{
			name:           "service error",
			venueID:        "venue-1",
			fake:           &fakeVenueService{getErr: errors.New("db error")},
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewVenueController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodGet, "/venues/"+tt.venueID, nil)
			req.SetPathValue("venueID", tt.venueID)
			rr := httptest.NewRecorder()

			ctrl.GetVenue(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Contains(t, rr.Body.String(), tt.wantBodySubstr)
			assert.Equal(t, tt.venueID, tt.fake.lastGetID)
		})
	}
}

func TestVenueController_ListVenues(t *testing.T) {
	t.Run("returns venues", func(t *testing.T) {
		fake := &fakeVenueService{listResult: []*domain.Venue{
			{ID: "venue-1", Name: "Main Hall"},
			{ID: "venue-2", Name: "Terrace"},
		}}
		ctrl := NewVenueController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/venues", nil)
		rr := httptest.NewRecorder()

		ctrl.ListVenues(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope struct {
			Data  []*domain.Venue   `json:"data"`
			Error *helpers.APIError `json:"error"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Len(t, envelope.Data, 2)
		assert.Equal(t, "Terrace", envelope.Data[1].Name)
	})

	t.Run("service error", func(t *testing.T) {
		fake := &fakeVenueService{listErr: errors.New("db error")}
		ctrl := NewVenueController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/venues", nil)
		rr := httptest.NewRecorder()

		ctrl.ListVenues(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
