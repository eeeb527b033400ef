package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "lrkr/internal/log"
	"lrkr/internal/repos"
	"lrkr/internal/services"
	"lrkr/internal/validate"
)

type AdminHandler struct {
	Orders      *services.OrderService
	Submissions *services.SubmissionService
	Inv         *services.InventoryService
}

type statusBody struct {
	Status string `json:"status"`
}

// GET /api/v1/admin/orders[?userId=]
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	ords, err := h.Orders.List(c.UserContext(), c.Query("userId"))
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return err
	}
	return c.JSON(ords)
}

// GET /api/v1/admin/orders/:id
func (h *AdminHandler) Order(c *fiber.Ctx) error {
	id := c.Params("id")
	o, err := h.Orders.Get(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return jsonError(c, fiber.StatusNotFound, "Order not found.")
	}
	if err != nil {
		applog.Error(c, "admin.orders.get.fail", err, map[string]any{"order_id": id})
		return err
	}
	return c.JSON(o)
}

// POST /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var body statusBody
	if err := c.BodyParser(&body); err != nil || id == "" || body.Status == "" {
		return jsonError(c, fiber.StatusBadRequest, "Missing id or status.")
	}
	err := h.Orders.UpdateStatus(c.UserContext(), id, body.Status)
	if handled, rerr := inputError(c, err); handled {
		return rerr
	}
	if errors.Is(err, services.ErrNotFound) {
		return jsonError(c, fiber.StatusNotFound, "Order not found.")
	}
	if err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return err
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": body.Status})
	return c.JSON(fiber.Map{"id": id, "status": body.Status})
}

// GET /api/v1/admin/submissions/contact[?status=]
func (h *AdminHandler) ContactSubmissions(c *fiber.Ctx) error {
	subs, err := h.Submissions.ListContact(c.UserContext(), c.Query("status"))
	if err != nil {
		applog.Error(c, "admin.contact.list.fail", err, nil)
		return err
	}
	return c.JSON(subs)
}

// GET /api/v1/admin/submissions/feedback[?status=]
func (h *AdminHandler) FeedbackSubmissions(c *fiber.Ctx) error {
	subs, err := h.Submissions.ListFeedback(c.UserContext(), c.Query("status"))
	if err != nil {
		applog.Error(c, "admin.feedback.list.fail", err, nil)
		return err
	}
	return c.JSON(subs)
}

// POST /api/v1/admin/submissions/:kind/:id/status
func (h *AdminHandler) UpdateSubmissionStatus(c *fiber.Ctx) error {
	kind, id := c.Params("kind"), c.Params("id")
	var body statusBody
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return jsonError(c, fiber.StatusBadRequest, "Missing status.")
	}
	err := h.Submissions.UpdateStatus(c.UserContext(), kind, id, body.Status)
	if handled, rerr := inputError(c, err); handled {
		return rerr
	}
	if errors.Is(err, repos.ErrNotFound) {
		return jsonError(c, fiber.StatusNotFound, "Submission not found.")
	}
	if err != nil {
		applog.Error(c, "admin.submissions.update.fail", err, map[string]any{"kind": kind, "id": id})
		return err
	}
	applog.Audit(c, "admin.submissions.update", map[string]any{"kind": kind, "id": id, "status": body.Status})
	return c.JSON(fiber.Map{"id": id, "status": body.Status})
}

// GET /api/v1/admin/inventory
func (h *AdminHandler) Inventory(c *fiber.Ctx) error {
	rows, err := h.Inv.List(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.inventory.list.fail", err, nil)
		return err
	}
	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		out = append(out, fiber.Map{
			"productId":    r.ProductID,
			"name":         r.Name,
			"stock":        r.Stock,
			"availability": services.Availability(r.Stock),
		})
	}
	return c.JSON(out)
}

// POST /api/v1/admin/inventory/:productId {stock: n|null}
func (h *AdminHandler) UpdateStock(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Invalid productId.")
	}
	var body struct {
		Stock *int `json:"stock"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	err := h.Inv.SetStock(c.UserContext(), pid, body.Stock)
	if handled, rerr := inputError(c, err); handled {
		return rerr
	}
	if errors.Is(err, services.ErrProductNotFound) {
		return jsonError(c, fiber.StatusNotFound, "Product not found.")
	}
	if err != nil {
		applog.Error(c, "admin.inventory.save.fail", err, map[string]any{"product": pid})
		return err
	}
	applog.Audit(c, "admin.inventory.save", map[string]any{"product": pid, "stock": body.Stock})
	return c.JSON(fiber.Map{"productId": pid, "stock": body.Stock})
}
