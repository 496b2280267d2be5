package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wheelstreet/bike-rental/internal/compare"
	"github.com/wheelstreet/bike-rental/internal/model"
	"github.com/wheelstreet/bike-rental/internal/repository"
)

type stubBikes struct{ bikes map[uint64]model.Bike }

func (s stubBikes) GetByID(_ context.Context, id uint64) (model.Bike, error) {
	b, ok := s.bikes[id]
	if !ok {
		return model.Bike{}, repository.ErrBikeNotFound
	}
	return b, nil
}

type stubAssistant struct {
	text  string
	err   error
	calls int
	gotA  compare.Summary
	gotB  compare.Summary
}

func (s *stubAssistant) Compare(_ context.Context, a, b compare.Summary) (string, error) {
	s.calls++
	s.gotA, s.gotB = a, b
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func newCompareHandler(assistant *stubAssistant) *CompareHandler {
	return NewCompareHandler(stubBikes{bikes: map[uint64]model.Bike{
		1: {ID: 1, Brand: "Honda", Model: "CB350", MileageKmpl: 35.5, PricePerHourCents: 12550},
		2: {ID: 2, Brand: "Yamaha", Model: "FZ-S", MileageKmpl: 45, PricePerHourCents: 9900},
	}}, assistant)
}

func TestCompareReturnsCommentary(t *testing.T) {
	assistant := &stubAssistant{text: "The Yamaha sips fuel."}
	h := newCompareHandler(assistant)

	rec := doJSON(t, h.Compare, http.MethodPost, "/v1/compare", `{"bike1_id":1,"bike2_id":2}`, 7)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"comparison":"The Yamaha sips fuel."`)
	require.Contains(t, rec.Body.String(), `"brand":"Honda"`)
	require.Contains(t, rec.Body.String(), `"brand":"Yamaha"`)

	require.Equal(t, 1, assistant.calls)
	require.Equal(t, "Honda", assistant.gotA.Brand)
	require.Equal(t, "Yamaha", assistant.gotB.Brand)
	require.Equal(t, int64(9900), assistant.gotB.PricePerHourCents)
}

func TestCompareIdenticalBikesRejectedBeforeAssistant(t *testing.T) {
	assistant := &stubAssistant{text: "should never be produced"}
	h := newCompareHandler(assistant)

	rec := doJSON(t, h.Compare, http.MethodPost, "/v1/compare", `{"bike1_id":2,"bike2_id":2}`, 7)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "cannot compare a bike with itself")
	require.Zero(t, assistant.calls)
}

func TestCompareDegradesWhenAssistantDown(t *testing.T) {
	assistant := &stubAssistant{err: fmt.Errorf("%w: status 503", compare.ErrUpstream)}
	h := newCompareHandler(assistant)

	rec := doJSON(t, h.Compare, http.MethodPost, "/v1/compare", `{"bike1_id":1,"bike2_id":2}`, 7)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"comparison":null`)
	require.Contains(t, rec.Body.String(), `"brand":"Honda"`)
	require.Contains(t, rec.Body.String(), `"brand":"Yamaha"`)
	require.Contains(t, rec.Body.String(), `"best_bike_id":2`)
	require.Equal(t, 1, assistant.calls)
}

func TestCompareBestBikeByMileage(t *testing.T) {
	assistant := &stubAssistant{text: "ok"}
	h := newCompareHandler(assistant)

	// bike 2 carries the higher mileage regardless of argument order
	rec := doJSON(t, h.Compare, http.MethodPost, "/v1/compare", `{"bike1_id":1,"bike2_id":2}`, 7)
	require.Contains(t, rec.Body.String(), `"best_bike_id":2`)

	rec = doJSON(t, h.Compare, http.MethodPost, "/v1/compare", `{"bike1_id":2,"bike2_id":1}`, 7)
	require.Contains(t, rec.Body.String(), `"best_bike_id":2`)
}

func TestCompareBestBikeTieGoesToFirst(t *testing.T) {
	h := NewCompareHandler(stubBikes{bikes: map[uint64]model.Bike{
		1: {ID: 1, Brand: "Honda", MileageKmpl: 40},
		2: {ID: 2, Brand: "Yamaha", MileageKmpl: 40},
	}}, &stubAssistant{text: "even match"})

	rec := doJSON(t, h.Compare, http.MethodPost, "/v1/compare", `{"bike1_id":1,"bike2_id":2}`, 7)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"best_bike_id":1`)
}

func TestCompareUnknownBikeIs404(t *testing.T) {
	assistant := &stubAssistant{text: "unused"}
	h := newCompareHandler(assistant)

	rec := doJSON(t, h.Compare, http.MethodPost, "/v1/compare", `{"bike1_id":1,"bike2_id":99}`, 7)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Zero(t, assistant.calls)
}

func TestCompareMissingIDsRejected(t *testing.T) {
	h := newCompareHandler(&stubAssistant{})
	rec := doJSON(t, h.Compare, http.MethodPost, "/v1/compare", `{"bike1_id":1}`, 7)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
