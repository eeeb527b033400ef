package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "lrkr/internal/log"
	"lrkr/internal/services"
)

type OrderHandler struct {
	Orders *services.OrderService
	Cart   *services.CartService
}

// Create serves POST /api/create-order and POST /api/v1/orders.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in services.OrderInput
	if err := c.BodyParser(&in); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body", "route": "order"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	o, err := h.Orders.Place(c.UserContext(), in)
	if handled, rerr := inputError(c, err); handled {
		applog.Security(c, "order.create.invalid", map[string]any{"reason": err.Error()})
		return rerr
	}
	if err != nil {
		applog.Error(c, "order.create.fail", err, map[string]any{"user_id": in.UserID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create order.",
			"details": "The order could not be saved. Please try again.",
		})
	}
	applog.Audit(c, "order.create", map[string]any{
		"order_id": o.ID, "user_id": o.UserID, "total": o.TotalAmount, "items": len(o.Items),
	})

	if _, err := h.Cart.Clear(c.UserContext(), sessionID(c)); err != nil {
		applog.Error(c, "order.cart_clear.fail", err, map[string]any{"order_id": o.ID})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully!",
		"orderId": o.ID,
	})
}
