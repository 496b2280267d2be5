package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/wheelstreet/bike-rental/internal/compare"
	"github.com/wheelstreet/bike-rental/internal/config"
	"github.com/wheelstreet/bike-rental/internal/database"
	"github.com/wheelstreet/bike-rental/internal/handler"
	"github.com/wheelstreet/bike-rental/internal/ledger"
	"github.com/wheelstreet/bike-rental/internal/queue"
	"github.com/wheelstreet/bike-rental/internal/repository"
	"github.com/wheelstreet/bike-rental/internal/router"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("ensure schema: %v", err)
	}
	cancel()

	// Optional. Nil disables response caching and rate limiting.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	bikes := repository.NewBikeRepo(db)
	locations := repository.NewLocationRepo(db)
	rentals := repository.NewRentalRepo(db)

	led := ledger.New(bikes, locations, rentals)
	assistant := compare.NewClient(compare.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, tokens),
		Bikes:     handler.NewBikeHandler(bikes),
		Locations: handler.NewLocationHandler(locations),
		Rentals:   handler.NewRentalHandler(led),
		Compare:   handler.NewCompareHandler(bikes, assistant),
	}, cfg.JWTSecret, rdb)

	// Background consumer writing rental.created events to logs/rental.log.
	go func() {
		if err := queue.StartRentalConsumer(); err != nil {
			log.Printf("rental consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
