package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wheelstreet/bike-rental/internal/model"
	"github.com/wheelstreet/bike-rental/internal/repository"
)

// LocationHandler serves the pickup/dropoff location list and the
// admin create endpoint.
type LocationHandler struct {
	Locations *repository.LocationRepo
}

func NewLocationHandler(l *repository.LocationRepo) *LocationHandler {
	return &LocationHandler{Locations: l}
}

type locationResp struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

func toLocationResp(l model.Location) locationResp {
	return locationResp{
		ID:      l.ID,
		Name:    l.Name,
		Address: l.Address,
		City:    l.City,
		State:   l.State,
		ZipCode: l.ZipCode,
	}
}

// List returns every location in insertion order.
func (h *LocationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	locs, err := h.Locations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list locations failed"})
	}
	out := make([]locationResp, 0, len(locs))
	for _, l := range locs {
		out = append(out, toLocationResp(l))
	}
	return c.JSON(http.StatusOK, echo.Map{"locations": out})
}

type createLocationReq struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

// Create adds a location (admin only).
func (h *LocationHandler) Create(c echo.Context) error {
	var req createLocationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Address == "" || req.City == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/address/city required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l := model.Location{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
	}
	id, err := h.Locations.Create(ctx, l)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create location failed"})
	}
	l.ID = id
	return c.JSON(http.StatusCreated, toLocationResp(l))
}
