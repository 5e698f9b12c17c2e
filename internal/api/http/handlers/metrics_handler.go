package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-api/internal/observability"
)

// MetricsHandler serves the exception counters for scraping.
type MetricsHandler struct {
	registry *observability.Registry
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(registry *observability.Registry) *MetricsHandler {
	return &MetricsHandler{registry: registry}
}

// Metrics handles GET /metrics.
func (h *MetricsHandler) Metrics(c *fiber.Ctx) error {
	body, err := h.registry.Export()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, observability.ContentType)
	return c.Status(fiber.StatusOK).Send(body)
}
