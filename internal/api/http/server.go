package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-api/internal/api/http/handlers"
	"github.com/spec-kit/catalog-api/internal/config"
	"github.com/spec-kit/catalog-api/internal/observability"
	"github.com/spec-kit/catalog-api/internal/service"
)

// Services groups the lookup services behind the HTTP handlers.
type Services struct {
	Users    *service.UserService
	Products *service.ProductService
}

// NewApp assembles the fiber application with middlewares and routes.
func NewApp(cfg *config.Config, logger *zap.Logger, registry *observability.Registry, svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})

	tracker := observability.NewExceptionTracker(logger, registry)
	RegisterMiddlewares(app, logger, tracker, cfg.App.RequestTimeout())

	RegisterRoutes(app, RouteConfig{
		Health:      handlers.NewHealthHandler(),
		Metrics:     handlers.NewMetricsHandler(registry),
		Users:       handlers.NewUsersHandler(svc.Users),
		Products:    handlers.NewProductsHandler(svc.Products),
		MetricsPath: cfg.Metrics.Path,
	})
	return app
}
