// Package server assembles the HTTP surface of the marketplace.
package server

import (
	"time"

	"lapak/internal/config"
	"lapak/internal/handlers"
	"lapak/internal/metrics"
	"lapak/internal/middleware"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Config        *config.Config
	Log           *zap.Logger
	Metrics       *metrics.Metrics
	Products      *services.ProductService
	Catalog       *services.CatalogService
	Notifications *services.NotificationService
	Uploads       *services.UploadService
}

// New builds the Fiber app with every route registered.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               d.Config.ServiceName,
		BodyLimit:             d.Config.Upload.MaxBytes,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(d.Log, d.Metrics))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		ExposeHeaders: "Content-Type,Content-Length",
		MaxAge:        3600,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))

	api := app.Group("/api")
	handlers.NewCatalogHandler(d.Catalog, d.Log).RegisterRoutes(api)
	handlers.NewProductHandler(d.Products, d.Log).RegisterRoutes(api)
	handlers.NewNotificationHandler(d.Notifications, d.Log).RegisterRoutes(api)
	handlers.NewUploadHandler(d.Uploads, d.Log).RegisterRoutes(api)

	app.Static("/uploads", d.Config.Upload.Dir)

	return app
}
