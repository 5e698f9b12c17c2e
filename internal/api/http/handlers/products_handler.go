package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-api/internal/api/dto"
	"github.com/spec-kit/catalog-api/internal/service"
)

// ProductsHandler exposes product lookup endpoints.
type ProductsHandler struct {
	products *service.ProductService
}

func NewProductsHandler(products *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.GetProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductListResponse(products))
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.products.GetProductByID(c.UserContext(), id)
	if errors.Is(err, service.ErrProductNotFound) {
		return c.Status(http.StatusNotFound).JSON(dto.MessageResponse{Message: "Product not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(*product))
}

// SimulateError handles GET /products/:id/error.
func (h *ProductsHandler) SimulateError(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid product id")
	}

	msg, err := h.products.SimulateFailure(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}
