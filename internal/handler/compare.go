package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wheelstreet/bike-rental/internal/compare"
	"github.com/wheelstreet/bike-rental/internal/model"
	"github.com/wheelstreet/bike-rental/internal/repository"
)

// catalogReader resolves bikes for the comparison page.
type catalogReader interface {
	GetByID(ctx context.Context, id uint64) (model.Bike, error)
}

// bikeComparer produces free-text commentary; *compare.Client
// implements it.
type bikeComparer interface {
	Compare(ctx context.Context, a, b compare.Summary) (string, error)
}

// CompareHandler serves the two-bike comparison page. The generated
// commentary is decorative: if the assistant is down the endpoint
// still returns both bikes with a null comparison.
type CompareHandler struct {
	Bikes     catalogReader
	Assistant bikeComparer
}

func NewCompareHandler(b catalogReader, a bikeComparer) *CompareHandler {
	return &CompareHandler{Bikes: b, Assistant: a}
}

type compareReq struct {
	Bike1ID uint64 `json:"bike1_id"`
	Bike2ID uint64 `json:"bike2_id"`
}

type compareResp struct {
	Bike1      bikeResp `json:"bike1"`
	Bike2      bikeResp `json:"bike2"`
	BestBikeID uint64   `json:"best_bike_id"`
	Comparison *string  `json:"comparison"`
}

// Compare fetches both bikes, picks the better mileage as best_bike
// and asks the assistant for commentary.
func (h *CompareHandler) Compare(c echo.Context) error {
	var req compareReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Bike1ID == 0 || req.Bike2ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bike1_id and bike2_id required"})
	}
	if req.Bike1ID == req.Bike2ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot compare a bike with itself"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 20*time.Second)
	defer cancel()

	b1, err := h.Bikes.GetByID(ctx, req.Bike1ID)
	if err != nil {
		return bikeLookupError(c, err)
	}
	b2, err := h.Bikes.GetByID(ctx, req.Bike2ID)
	if err != nil {
		return bikeLookupError(c, err)
	}

	resp := compareResp{
		Bike1:      toBikeResp(b1),
		Bike2:      toBikeResp(b2),
		BestBikeID: bestByMileage(b1, b2),
	}

	text, err := h.Assistant.Compare(ctx, toSummary(b1), toSummary(b2))
	if err != nil {
		if errors.Is(err, compare.ErrUpstream) {
			// Degraded mode: the page renders without commentary.
			return c.JSON(http.StatusOK, resp)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "comparison failed"})
	}
	resp.Comparison = &text
	return c.JSON(http.StatusOK, resp)
}

func bikeLookupError(c echo.Context, err error) error {
	if err == repository.ErrBikeNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bike not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bike failed"})
}

// bestByMileage returns the id of the bike with the higher mileage
// figure. Ties go to the first bike.
func bestByMileage(a, b model.Bike) uint64 {
	if b.MileageKmpl > a.MileageKmpl {
		return b.ID
	}
	return a.ID
}

func toSummary(b model.Bike) compare.Summary {
	return compare.Summary{
		Brand:             b.Brand,
		Model:             b.Model,
		MileageKmpl:       b.MileageKmpl,
		PricePerHourCents: b.PricePerHourCents,
	}
}
