package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wheelstreet/bike-rental/internal/model"
	"github.com/wheelstreet/bike-rental/internal/repository"
)

// BikeHandler serves the public catalog endpoints plus the admin
// mutations behind the ADMIN role gate.
type BikeHandler struct {
	Bikes *repository.BikeRepo
}

func NewBikeHandler(b *repository.BikeRepo) *BikeHandler {
	return &BikeHandler{Bikes: b}
}

type bikeResp struct {
	ID                uint64  `json:"id"`
	Category          string  `json:"category"`
	Brand             string  `json:"brand"`
	Model             string  `json:"model"`
	PricePerHourCents int64   `json:"price_per_hour_cents"`
	Available         bool    `json:"available"`
	Description       *string `json:"description,omitempty"`
	MileageKmpl       float64 `json:"mileage_kmpl"`
	ImageURL          *string `json:"image_url,omitempty"`
}

func toBikeResp(b model.Bike) bikeResp {
	return bikeResp{
		ID:                b.ID,
		Category:          string(b.Category),
		Brand:             b.Brand,
		Model:             b.Model,
		PricePerHourCents: b.PricePerHourCents,
		Available:         b.Available,
		Description:       b.Description,
		MileageKmpl:       b.MileageKmpl,
		ImageURL:          b.ImageURL,
	}
}

// List returns the catalog. By default only bikes flagged available
// are shown; ?all=true includes the rest. The flag is advisory so
// hiding a bike never blocks an existing booking flow.
func (h *BikeHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	availableOnly := c.QueryParam("all") != "true"
	bikes, err := h.Bikes.List(ctx, availableOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bikes failed"})
	}
	out := make([]bikeResp, 0, len(bikes))
	for _, b := range bikes {
		out = append(out, toBikeResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bikes": out})
}

// Get returns one bike by id, available or not.
func (h *BikeHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bike id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bikes.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBikeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bike not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bike failed"})
	}
	return c.JSON(http.StatusOK, toBikeResp(b))
}

type createBikeReq struct {
	Category          string  `json:"category"`
	Brand             string  `json:"brand"`
	Model             string  `json:"model"`
	PricePerHourCents int64   `json:"price_per_hour_cents"`
	Available         *bool   `json:"available"`
	Description       *string `json:"description"`
	MileageKmpl       float64 `json:"mileage_kmpl"`
	ImageURL          *string `json:"image_url"`
}

// Create adds a bike to the catalog (admin only).
func (h *BikeHandler) Create(c echo.Context) error {
	var req createBikeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidCategory(req.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
	}
	if req.Brand == "" || req.Model == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "brand/model required"})
	}
	if req.PricePerHourCents < 0 || req.MileageKmpl < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price and mileage must not be negative"})
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b := model.Bike{
		Category:          model.BikeCategory(req.Category),
		Brand:             req.Brand,
		Model:             req.Model,
		PricePerHourCents: req.PricePerHourCents,
		Available:         available,
		Description:       req.Description,
		MileageKmpl:       req.MileageKmpl,
		ImageURL:          req.ImageURL,
	}
	id, err := h.Bikes.Create(ctx, b)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create bike failed"})
	}
	b.ID = id
	return c.JSON(http.StatusCreated, toBikeResp(b))
}

type updateBikeReq struct {
	Available   *bool   `json:"available"`
	Description *string `json:"description"`
}

// Update changes the two mutable bike fields (admin only). Omitted
// fields are left untouched.
func (h *BikeHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bike id"})
	}
	var req updateBikeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bikes.UpdateAdvisory(ctx, id, req.Available, req.Description); err != nil {
		if err == repository.ErrBikeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bike not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update bike failed"})
	}
	b, err := h.Bikes.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bike failed"})
	}
	return c.JSON(http.StatusOK, toBikeResp(b))
}

// Delete removes a bike and, through the cascading foreign key, its
// rentals (admin only).
func (h *BikeHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bike id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bikes.Delete(ctx, id); err != nil {
		if err == repository.ErrBikeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bike not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete bike failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
