package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "lrkr/internal/log"
	"lrkr/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		applog.Error(c, "categories.list.fail", err, nil)
		return err
	}
	return c.JSON(cats)
}

// GET /api/v1/categories/:category/products
func (h *CategoryHandler) Products(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Params("category"))
	if name == "" || len(name) > 64 {
		return jsonError(c, fiber.StatusBadRequest, "Invalid category.")
	}
	ps, err := h.Catalog.ByCategory(c.UserContext(), name)
	if err != nil {
		applog.Error(c, "categories.products.fail", err, map[string]any{"category": name})
		return err
	}
	return c.JSON(ps)
}
