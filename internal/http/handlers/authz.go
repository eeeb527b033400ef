package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lrkr/internal/domain"
	applog "lrkr/internal/log"
	"lrkr/internal/services"
)

const sidCookie = "sid"

// Session makes sure every visitor carries a sid cookie and stores it in Locals.
func Session(secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sidCookie)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     sidCookie,
				Value:    sid,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Secure:   secure,
			})
		}
		c.Locals(sidCookie, sid)
		return c.Next()
	}
}

func sessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sidCookie).(string)
	return sid
}

// AttachUser puts the logged-in user, if any, in Locals.
func AttachUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := sessionID(c); sid != "" {
			if u, err := auth.CurrentUser(c.UserContext(), sid); err == nil && u != nil {
				c.Locals("user", u)
				c.Locals("user_id", u.ID)
			}
		}
		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := c.Locals("user").(*domain.User)
		if u == nil {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "anonymous"})
			return jsonError(c, fiber.StatusUnauthorized, "Login required.")
		}
		if u.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return jsonError(c, fiber.StatusForbidden, "Access denied.")
		}
		return c.Next()
	}
}
