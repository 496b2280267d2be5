package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wheelstreet/bike-rental/internal/ledger"
	"github.com/wheelstreet/bike-rental/internal/queue"
	"github.com/wheelstreet/bike-rental/internal/repository"
	queue_publisher "github.com/wheelstreet/bike-rental/internal/service"
)

// RentalHandler exposes the booking lifecycle over HTTP. All routes
// require authentication; the user id comes from the JWT middleware.
type RentalHandler struct {
	Ledger *ledger.Ledger
}

func NewRentalHandler(l *ledger.Ledger) *RentalHandler {
	return &RentalHandler{Ledger: l}
}

type createRentalReq struct {
	BikeID            uint64  `json:"bike_id"`
	PickupLocationID  *uint64 `json:"pickup_location_id"`
	DropoffLocationID *uint64 `json:"dropoff_location_id"`
	PickupAt          string  `json:"pickup_at"`
	DropoffAt         string  `json:"dropoff_at"`
}

// Create books a bike for the authenticated user. Validation and
// pricing live in the ledger; this handler only translates errors to
// status codes and fires the rental.created event after commit.
func (h *RentalHandler) Create(c echo.Context) error {
	uid := getUserID(c)
	if uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.BikeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bike_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Ledger.Create(ctx, uid, ledger.CreateParams{
		BikeID:            req.BikeID,
		PickupLocationID:  req.PickupLocationID,
		DropoffLocationID: req.DropoffLocationID,
		PickupAt:          req.PickupAt,
		DropoffAt:         req.DropoffAt,
	})
	if err != nil {
		return rentalError(c, err)
	}

	detail, err := h.Ledger.Get(ctx, rec.ID, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load rental failed"})
	}

	// Best effort. A broker outage must not fail a committed booking.
	go publishCreated(uid, detail)

	return c.JSON(http.StatusCreated, detail)
}

// List returns the authenticated user's rentals in booking order.
func (h *RentalHandler) List(c echo.Context) error {
	uid := getUserID(c)
	if uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rentals, err := h.Ledger.List(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rentals failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rentals": rentals})
}

// Get returns one of the user's rentals. Somebody else's rental is
// reported as not found rather than forbidden.
func (h *RentalHandler) Get(c echo.Context) error {
	uid := getUserID(c)
	if uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rental id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Ledger.Get(ctx, id, uid)
	if err != nil {
		return rentalError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Cancel deletes one of the user's rentals.
func (h *RentalHandler) Cancel(c echo.Context) error {
	uid := getUserID(c)
	if uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rental id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Ledger.Cancel(ctx, uid, id); err != nil {
		return rentalError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// rentalError maps ledger and repository errors onto HTTP responses.
func rentalError(c echo.Context, err error) error {
	if ve := ledger.AsValidation(err); ve != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Reason})
	}
	switch err {
	case repository.ErrBikeNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bike not found"})
	case repository.ErrLocationNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	case repository.ErrRentalNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "rental not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "rental operation failed"})
}

func publishCreated(uid uint64, d repository.RentalDetail) {
	ev := queue.RentalCreatedEvent{
		RentalID:        d.ID,
		UserID:          uid,
		BikeID:          d.BikeID,
		BikeBrand:       d.BikeBrand,
		BikeModel:       d.BikeModel,
		PickupAt:        d.PickupAt.UTC().Format(time.RFC3339),
		DropoffAt:       d.DropoffAt.UTC().Format(time.RFC3339),
		TotalPriceCents: d.TotalPriceCents,
		CreatedAt:       d.CreatedAt.UTC().Format(time.RFC3339),
	}
	if d.PickupLocation != nil {
		ev.PickupLocation = *d.PickupLocation
	}
	if d.DropoffLocation != nil {
		ev.DropoffLocation = *d.DropoffLocation
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = queue_publisher.PublishRentalCreated(ctx, ev)
}
