package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "lrkr/internal/log"
)

const friendlyError = "Something went wrong. Please try again."

// Limits are requests per window for the throttled route groups.
type Limits struct {
	General      int
	Availability int
	Login        int
	Submissions  int
	Window       time.Duration
}

func DefaultLimits() Limits {
	return Limits{General: 120, Availability: 15, Login: 5, Submissions: 10, Window: time.Minute}
}

type AppConfig struct {
	Views        fiber.Views
	BodyLimit    int
	CookieSecure bool
	Limits       Limits
	// AccessLog enables fiber's request logger on stdout.
	AccessLog bool
}

// ErrorHandler logs the failure and answers without leaking internals. API
// routes get JSON, everything else the error page.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := friendlyError
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code, msg = fe.Code, fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	if rerr := c.Status(code).Render("error", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

func rateLimiter(max int, window time.Duration, key, action string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|" + key
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, action, nil)
			return jsonError(c, fiber.StatusTooManyRequests, "rate limit exceeded, retry soon")
		},
	})
}

// NewApp builds the fiber app with middleware and every route.
func NewApp(d *Deps, cfg AppConfig) *fiber.App {
	if cfg.Limits == (Limits{}) {
		cfg.Limits = DefaultLimits()
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 1 << 20
	}
	lim := cfg.Limits

	app := fiber.New(fiber.Config{
		Views:        cfg.Views,
		BodyLimit:    cfg.BodyLimit,
		UnescapePath: true,
		ErrorHandler: ErrorHandler,
	})

	app.Use(requestid.New())
	if cfg.AccessLog {
		app.Use(logger.New())
	}
	app.Use(helmet.New())
	app.Use(Session(cfg.CookieSecure))
	app.Use(AttachUser(d.Auth))
	app.Use(rateLimiter(lim.General, lim.Window, "all", "rate.general.hit"))

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/cart", d.CartHandler.Page)

	// Original order and form endpoints
	submitLimiter := rateLimiter(lim.Submissions, lim.Window, "submit", "rate.submit.hit")
	app.Post("/api/create-order", submitLimiter, d.OrderHandler.Create)
	app.Post("/api/submit-contact-form", submitLimiter, d.SubmissionHandler.Contact)
	app.Post("/api/submit-feedback", submitLimiter, d.SubmissionHandler.Feedback)

	api := app.Group("/api/v1")
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/categories/:category/products", d.CategoryHandler.Products)
	api.Get("/products", d.SearchHandler.Browse)
	api.Get("/products/featured", d.ProductHandler.Featured)
	api.Get("/products/:id", d.ProductHandler.Detail)
	api.Get("/availability", rateLimiter(lim.Availability, lim.Window, "avail", "rate.availability.hit"), d.InventoryHandler.Availability)

	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart/items", d.CartHandler.Add)
	api.Patch("/cart/items/:productId", d.CartHandler.Update)
	api.Delete("/cart/items/:productId", d.CartHandler.Remove)
	api.Delete("/cart", d.CartHandler.Clear)

	api.Post("/orders", submitLimiter, d.OrderHandler.Create)

	api.Post("/auth/login", rateLimiter(lim.Login, 10*lim.Window, "login", "rate.login.hit"), d.AuthHandler.Login)
	api.Post("/auth/logout", d.AuthHandler.Logout)

	admin := api.Group("/admin", RequireAdmin())
	admin.Get("/orders", d.AdminHandler.ListOrders)
	admin.Get("/orders/:id", d.AdminHandler.Order)
	admin.Post("/orders/:id/status", d.AdminHandler.UpdateOrderStatus)
	admin.Get("/submissions/contact", d.AdminHandler.ContactSubmissions)
	admin.Get("/submissions/feedback", d.AdminHandler.FeedbackSubmissions)
	admin.Post("/submissions/:kind/:id/status", d.AdminHandler.UpdateSubmissionStatus)
	admin.Get("/inventory", d.AdminHandler.Inventory)
	admin.Post("/inventory/:productId", d.AdminHandler.UpdateStock)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})
	return app
}
