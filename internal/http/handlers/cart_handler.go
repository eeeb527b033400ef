package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	applog "lrkr/internal/log"
	"lrkr/internal/services"
	"lrkr/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

var tooMany = fmt.Sprintf("Quantity cannot exceed %d.", validate.MaxQty)

type cartItemBody struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// GET /cart
func (h *CartHandler) Page(c *fiber.Ctx) error {
	cv, err := h.Cart.View(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(cv)
}

// POST /api/v1/cart/items
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var body cartItemBody
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	pid, ok := validate.ID(body.ProductID)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid productId.")
	}
	// non-positive quantities are coerced to 1 by the cart
	qty := 1
	if body.Quantity != nil {
		qty = *body.Quantity
	}
	if qty > validate.MaxQty {
		applog.Security(c, "validation.fail", map[string]any{"field": "quantity", "value": qty})
		return jsonError(c, fiber.StatusBadRequest, tooMany)
	}
	cv, err := h.Cart.Add(c.UserContext(), sessionID(c), pid, qty)
	if errors.Is(err, services.ErrProductNotFound) {
		return jsonError(c, fiber.StatusNotFound, "Product not found.")
	}
	if err != nil {
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": pid})
		return err
	}
	return c.JSON(cv)
}

// PATCH /api/v1/cart/items/:productId
func (h *CartHandler) Update(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Invalid productId.")
	}
	var body cartItemBody
	if err := c.BodyParser(&body); err != nil || body.Quantity == nil {
		return jsonError(c, fiber.StatusBadRequest, "Missing quantity.")
	}
	if *body.Quantity > validate.MaxQty {
		applog.Security(c, "validation.fail", map[string]any{"field": "quantity", "value": *body.Quantity})
		return jsonError(c, fiber.StatusBadRequest, tooMany)
	}
	cv, err := h.Cart.Update(c.UserContext(), sessionID(c), pid, *body.Quantity)
	if err != nil {
		applog.Error(c, "cart.update.fail", err, map[string]any{"product": pid})
		return err
	}
	return c.JSON(cv)
}

// DELETE /api/v1/cart/items/:productId
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Invalid productId.")
	}
	cv, err := h.Cart.Remove(c.UserContext(), sessionID(c), pid)
	if err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"product": pid})
		return err
	}
	return c.JSON(cv)
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	cv, err := h.Cart.Clear(c.UserContext(), sessionID(c))
	if err != nil {
		applog.Error(c, "cart.clear.fail", err, nil)
		return err
	}
	return c.JSON(cv)
}
