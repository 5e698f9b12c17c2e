package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-api/internal/api/dto"
	"github.com/spec-kit/catalog-api/internal/service"
)

// UsersHandler exposes user lookup endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.GetUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserListResponse(users))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid user id")
	}

	user, err := h.users.GetUserByID(c.UserContext(), id)
	if errors.Is(err, service.ErrUserNotFound) {
		return c.Status(http.StatusNotFound).JSON(dto.MessageResponse{Message: "User not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(*user))
}

// SimulateError handles GET /users/:id/error.
func (h *UsersHandler) SimulateError(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid user id")
	}

	msg, err := h.users.SimulateFailure(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}
