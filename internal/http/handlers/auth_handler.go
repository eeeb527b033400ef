package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "lrkr/internal/log"
	"lrkr/internal/services"
	"lrkr/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginBody
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": body.Email, "reason": "bad_format"})
		return jsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !validate.Password(body.Password) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return jsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	u, err := h.Auth.Login(c.UserContext(), sessionID(c), email, body.Password)
	if errors.Is(err, services.ErrBadCreds) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return jsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		applog.Error(c, "auth.login.error", err, nil)
		return err
	}
	c.Locals("user_id", u.ID)
	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role})
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := sessionID(c)
	if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
		applog.Error(c, "auth.logout.fail", err, nil)
		return err
	}
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.SendStatus(fiber.StatusNoContent)
}
