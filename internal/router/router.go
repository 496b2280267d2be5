// Package router maps the HTTP surface onto handlers and middleware.
// Public catalog routes are cacheable; everything under /v1 that
// mutates or reads personal data sits behind JWT authentication, and
// catalog mutations additionally require the ADMIN role.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/wheelstreet/bike-rental/internal/config"
	"github.com/wheelstreet/bike-rental/internal/handler"
	"github.com/wheelstreet/bike-rental/internal/middleware"
)

// Handlers groups every handler the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Bikes     *handler.BikeHandler
	Locations *handler.LocationHandler
	Rentals   *handler.RentalHandler
	Compare   *handler.CompareHandler
}

// Register wires all routes. rdb may be nil, in which case the Redis
// cache and rate-limit middleware are skipped and every request goes
// straight to its handler.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	var cacheMW, rateMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
		rateMW = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		e.Use(rateMW)
	}

	// Unauthenticated session endpoints.
	authGrp := e.Group("/v1/auth")
	authGrp.POST("/register", h.Auth.Register)
	authGrp.POST("/login", h.Auth.Login)
	authGrp.POST("/refresh", h.Auth.Refresh)
	authGrp.POST("/logout", h.Auth.Logout)

	// Public catalog browsing. Guests can inspect bikes and locations
	// before signing up, so no JWT here; responses are cacheable.
	pub := e.Group("/v1")
	if cacheMW != nil {
		pub.Use(cacheMW)
	}
	pub.GET("/bikes", h.Bikes.List)
	pub.GET("/bikes/:id", h.Bikes.Get)
	pub.GET("/locations", h.Locations.List)

	// Authenticated customer surface.
	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", h.Auth.Me)
	// Logout with a bearer and no refresh_token revokes every session
	// of the user; the /v1/auth variant only ends the one session
	// named by the body.
	auth.POST("/logout", h.Auth.Logout)
	auth.POST("/rentals", h.Rentals.Create)
	auth.GET("/my-rentals", h.Rentals.List)
	auth.GET("/rentals/:id", h.Rentals.Get)
	auth.DELETE("/rentals/:id", h.Rentals.Cancel)
	auth.POST("/compare", h.Compare.Compare)

	// Catalog administration.
	admin := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("ADMIN"))
	admin.POST("/bikes", h.Bikes.Create)
	admin.PATCH("/bikes/:id", h.Bikes.Update)
	admin.DELETE("/bikes/:id", h.Bikes.Delete)
	admin.POST("/locations", h.Locations.Create)
}
