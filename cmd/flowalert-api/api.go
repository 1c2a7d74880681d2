// Package main provides the flowalert preview API server.
package main

import (
	"log/slog"
	"strconv"

	"github.com/dukex/flowalert/pkg/registry"
	"github.com/dukex/flowalert/pkg/services"
	"github.com/dukex/flowalert/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger   *slog.Logger
	registry *registry.Registry
	validate *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	registry *registry.Registry,
) *API {
	return &API{
		logger:   logger,
		registry: registry,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(services.NewAlerts(a.registry, nil), a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("flowalert API")
	})

	app.Get("/composers", handlers.ListComposers)
	app.Post("/alerts/preview/:kind", handlers.PreviewAlert)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	a.logger.Info("Listening", "port", port)

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
