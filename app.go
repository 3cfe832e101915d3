package main

import (
	"time"

	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// appDeps holds everything the HTTP layer is built from.
type appDeps struct {
	logger         *zap.Logger
	productService *services.ProductService
	authService    *services.AuthService // nil disables authentication
	gatherer       prometheus.Gatherer
	eventsEnabled  bool
	accessLog      bool
}

// newApp builds the Fiber app: health, metrics, auth and product routes.
// Product routes are served both at the root and under /api/v1.
func newApp(d appDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "catalog",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if d.accessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		events := "disabled"
		if d.eventsEnabled {
			events = "enabled"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": events,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{})))

	var writeGuards []fiber.Handler
	var authHandler *handlers.AuthHandler
	if d.authService != nil {
		authHandler = handlers.NewAuthHandler(d.authService, d.logger)
		writeGuards = append(writeGuards, middleware.AuthRequired(d.authService, d.logger))
	}
	productHandler := handlers.NewProductHandler(d.productService, d.logger)

	for _, router := range []fiber.Router{app, app.Group("/api/v1")} {
		if authHandler != nil {
			authHandler.RegisterRoutes(router)
		}
		productHandler.RegisterRoutes(router, writeGuards...)
	}
	return app
}
