package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lrkr/internal/services"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject user if present
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	return c.Render(tmpl, data)
}

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// inputError writes a 400 with the caller-safe message when err is a
// services.InputError and reports whether it did.
func inputError(c *fiber.Ctx, err error) (bool, error) {
	var ie *services.InputError
	if !errors.As(err, &ie) {
		return false, nil
	}
	return true, jsonError(c, fiber.StatusBadRequest, ie.Msg)
}
