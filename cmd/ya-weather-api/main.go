package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/horv1tz/ya-weather-api/internal/api/http"
	"github.com/horv1tz/ya-weather-api/internal/cache"
	"github.com/horv1tz/ya-weather-api/internal/config"
	"github.com/horv1tz/ya-weather-api/internal/weather"
	"github.com/horv1tz/ya-weather-api/internal/weather/source"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound page fetches.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	fetcher := source.NewYandex(httpClient)

	// One cache per scope, explicitly constructed and handed to the service.
	currentCache := cache.New[weather.CurrentConditions](cfg.CacheTTL)
	monthCache := cache.New[weather.MonthForecast](cfg.CacheTTL)

	// Janitor keeps long-expired entries from accumulating.
	janitor := cache.NewJanitor(cfg.CacheSweepInterval, cfg.CacheMaxAge, currentCache, monthCache)
	if err := janitor.Start(); err != nil {
		log.Fatalf("failed to start cache janitor: %v", err)
	}
	defer janitor.Stop()

	service := weather.NewService(fetcher, cfg.BaseURL, currentCache, monthCache)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "ya-weather-api",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "ya-weather-api",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
