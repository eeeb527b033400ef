package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "lrkr/internal/log"
	"lrkr/internal/services"
	"lrkr/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// GET /api/v1/availability?productId=
func (h *InventoryHandler) Availability(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Query("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid productId.")
	}
	a, err := h.Inv.CheckAvailability(c.UserContext(), pid)
	if errors.Is(err, services.ErrProductNotFound) {
		return jsonError(c, fiber.StatusNotFound, "Product not found.")
	}
	if err != nil {
		applog.Error(c, "availability.fail", err, map[string]any{"product": pid})
		return err
	}
	return c.JSON(a)
}
