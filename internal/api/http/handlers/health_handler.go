package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthHandler responds to liveness probes.
type HealthHandler struct{}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health handles GET /health. It has no dependencies to check.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
}
