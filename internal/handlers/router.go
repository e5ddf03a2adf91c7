package handlers

import (
	"strings"
	"time"

	"gudang/internal/middleware"
	"gudang/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Dependencies are the services the HTTP API is built on.
type Dependencies struct {
	Auth     *services.AuthService
	Products *services.ProductService
	Sales    *services.SaleService
	Reports  *services.ReportService
	Log      *logrus.Logger

	StorageDriver string
	EventsEnabled bool
}

// NewApp builds the Fiber app with middleware, public auth routes and the
// token-protected inventory, sales and report routes.
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "gudang",
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		Output: accessLog{log: deps.Log.WithField("component", "http")},
	}))

	// --- Health Check Endpoint ---
	events := "disabled"
	if deps.EventsEnabled {
		events = "enabled"
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"storage": deps.StorageDriver,
			"events":  events,
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	NewAuthHandler(deps.Auth, deps.Log).RegisterRoutes(apiV1)

	// Protected routes (require JWT authentication)
	protected := apiV1.Group("", middleware.AuthRequired(deps.Auth, deps.Log))
	NewProductHandler(deps.Products, deps.Log).RegisterRoutes(protected)
	NewSaleHandler(deps.Sales, deps.Log).RegisterRoutes(protected)
	NewReportHandler(deps.Reports, deps.Log).RegisterRoutes(protected)

	return app
}

// accessLog hands each access line from the logger middleware to logrus.
type accessLog struct {
	log logrus.FieldLogger
}

func (a accessLog) Write(p []byte) (int, error) {
	a.log.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
