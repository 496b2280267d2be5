package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/wheelstreet/bike-rental/internal/ledger"
	"github.com/wheelstreet/bike-rental/internal/model"
	"github.com/wheelstreet/bike-rental/internal/repository"
)

// ----- in-memory ledger dependencies -----

type stubCatalog struct{ bikes map[uint64]model.Bike }

func (s *stubCatalog) GetByID(_ context.Context, id uint64) (model.Bike, error) {
	b, ok := s.bikes[id]
	if !ok {
		return model.Bike{}, repository.ErrBikeNotFound
	}
	return b, nil
}

type stubLocations struct{}

func (stubLocations) GetByID(_ context.Context, id uint64) (model.Location, error) {
	return model.Location{}, repository.ErrLocationNotFound
}

type stubStore struct {
	nextID  uint64
	rentals map[uint64]model.Rental
}

func (s *stubStore) Insert(_ context.Context, rec *model.Rental) error {
	if s.nextID == 0 {
		s.nextID = 1
	}
	rec.ID = s.nextID
	rec.CreatedAt = time.Now().UTC()
	s.nextID++
	s.rentals[rec.ID] = *rec
	return nil
}

func (s *stubStore) DeleteByIDForUser(_ context.Context, rentalID, userID uint64) error {
	r, ok := s.rentals[rentalID]
	if !ok || r.UserID != userID {
		return repository.ErrRentalNotFound
	}
	delete(s.rentals, rentalID)
	return nil
}

func (s *stubStore) ListByUser(_ context.Context, userID uint64) ([]repository.RentalDetail, error) {
	out := make([]repository.RentalDetail, 0)
	for id := uint64(1); id < s.nextID; id++ {
		if r, ok := s.rentals[id]; ok && r.UserID == userID {
			out = append(out, s.detail(r))
		}
	}
	return out, nil
}

func (s *stubStore) GetByIDForUser(_ context.Context, rentalID, userID uint64) (repository.RentalDetail, error) {
	r, ok := s.rentals[rentalID]
	if !ok || r.UserID != userID {
		return repository.RentalDetail{}, repository.ErrRentalNotFound
	}
	return s.detail(r), nil
}

func (s *stubStore) detail(r model.Rental) repository.RentalDetail {
	return repository.RentalDetail{
		ID: r.ID, BikeID: r.BikeID, BikeBrand: "Honda", BikeModel: "CB350",
		PickupAt: r.PickupAt, DropoffAt: r.DropoffAt,
		TotalPriceCents: r.TotalPriceCents, CreatedAt: r.CreatedAt,
	}
}

func newTestHandler() *RentalHandler {
	catalog := &stubCatalog{bikes: map[uint64]model.Bike{
		1: {ID: 1, Brand: "Honda", Model: "CB350", PricePerHourCents: 10000, Available: true},
	}}
	store := &stubStore{nextID: 1, rentals: map[uint64]model.Rental{}}
	return NewRentalHandler(ledger.New(catalog, stubLocations{}, store))
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, userID uint64, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", float64(userID)) // as the JWT middleware stores it
	}
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	require.NoError(t, h(c))
	return rec
}

func TestCreateRentalReturns201WithTotal(t *testing.T) {
	h := newTestHandler()
	rec := doJSON(t, h.Create, http.MethodPost, "/v1/rentals",
		`{"bike_id":1,"pickup_at":"2026-06-01T10:00","dropoff_at":"2026-06-01T12:30"}`, 7)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"total_price_cents":25000`)
	require.Contains(t, rec.Body.String(), `"bike_brand":"Honda"`)
}

func TestCreateRentalValidationErrors(t *testing.T) {
	h := newTestHandler()
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad date", `{"bike_id":1,"pickup_at":"soon","dropoff_at":"2026-06-01T11:00"}`, "invalid date format"},
		{"inverted window", `{"bike_id":1,"pickup_at":"2026-06-01T11:00","dropoff_at":"2026-06-01T10:00"}`, "dropoff must be after pickup"},
		{"missing bike", `{"pickup_at":"2026-06-01T10:00","dropoff_at":"2026-06-01T11:00"}`, "bike_id required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h.Create, http.MethodPost, "/v1/rentals", tc.body, 7)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestCreateRentalUnknownBikeIs404(t *testing.T) {
	h := newTestHandler()
	rec := doJSON(t, h.Create, http.MethodPost, "/v1/rentals",
		`{"bike_id":99,"pickup_at":"2026-06-01T10:00","dropoff_at":"2026-06-01T11:00"}`, 7)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRentalRequiresIdentity(t *testing.T) {
	h := newTestHandler()
	rec := doJSON(t, h.Create, http.MethodPost, "/v1/rentals",
		`{"bike_id":1,"pickup_at":"2026-06-01T10:00","dropoff_at":"2026-06-01T11:00"}`, 0)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRentalOwnershipOverHTTP(t *testing.T) {
	h := newTestHandler()
	created := doJSON(t, h.Create, http.MethodPost, "/v1/rentals",
		`{"bike_id":1,"pickup_at":"2026-06-01T10:00","dropoff_at":"2026-06-01T11:00"}`, 7)
	require.Equal(t, http.StatusCreated, created.Code)

	// another user sees 404, not 403
	rec := doJSON(t, h.Get, http.MethodGet, "/v1/rentals/1", "", 8, "id", "1")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h.Cancel, http.MethodDelete, "/v1/rentals/1", "", 8, "id", "1")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h.Cancel, http.MethodDelete, "/v1/rentals/1", "", 7, "id", "1")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// gone for good
	rec = doJSON(t, h.Get, http.MethodGet, "/v1/rentals/1", "", 7, "id", "1")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRentalsEmpty(t *testing.T) {
	h := newTestHandler()
	rec := doJSON(t, h.List, http.MethodGet, "/v1/my-rentals", "", 7)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"rentals":[]`)
}

func TestPathIDRejectsGarbage(t *testing.T) {
	h := newTestHandler()
	for _, bad := range []string{"abc", "-1", "0", "1.5"} {
		rec := doJSON(t, h.Get, http.MethodGet, "/v1/rentals/"+bad, "", 7, "id", bad)
		require.Equal(t, http.StatusBadRequest, rec.Code, "id %q", bad)
	}
}
