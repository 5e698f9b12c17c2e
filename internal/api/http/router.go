package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-api/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Metrics     *handlers.MetricsHandler
	Users       *handlers.UsersHandler
	Products    *handlers.ProductsHandler
	MetricsPath string
}

// RegisterRoutes wires HTTP routes. Route names become the endpoint label
// on exception metrics.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	app.Get("/health", cfg.Health.Health).Name("health")
	app.Get(metricsPath, cfg.Metrics.Metrics).Name("metrics")

	app.Get("/users", cfg.Users.List).Name("get_users")
	app.Get("/users/:id<int>", cfg.Users.Get).Name("get_user")
	app.Get("/users/:id<int>/error", cfg.Users.SimulateError).Name("simulate_user_error")

	app.Get("/products", cfg.Products.List).Name("get_products")
	app.Get("/products/:id<int>", cfg.Products.Get).Name("get_product")
	app.Get("/products/:id<int>/error", cfg.Products.SimulateError).Name("simulate_product_error")
}
