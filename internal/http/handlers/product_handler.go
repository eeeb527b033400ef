package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "lrkr/internal/log"
	"lrkr/internal/repos"
	"lrkr/internal/services"
	"lrkr/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/products/featured?limit=
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	limit := repos.DefaultFeaturedLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			return jsonError(c, fiber.StatusBadRequest, "Invalid limit.")
		}
		limit = n
	}
	ps, err := h.Catalog.Featured(c.UserContext(), limit)
	if err != nil {
		applog.Error(c, "products.featured.fail", err, nil)
		return err
	}
	return c.JSON(ps)
}

// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid product id.")
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if errors.Is(err, services.ErrProductNotFound) {
		return jsonError(c, fiber.StatusNotFound, "Product not found.")
	}
	if err != nil {
		applog.Error(c, "products.get.fail", err, map[string]any{"product": id})
		return err
	}
	return c.JSON(p)
}
