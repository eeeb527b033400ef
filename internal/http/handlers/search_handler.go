package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lrkr/internal/catalog"
	applog "lrkr/internal/log"
	"lrkr/internal/services"
	"lrkr/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

// Browse serves GET /api/v1/products:
// ?q=&category=a,b&minPrice=&maxPrice=&tags=x,y&sort=price-asc
func (h *SearchHandler) Browse(c *fiber.Ctx) error {
	var f catalog.Filters

	if raw := c.Query("q"); strings.TrimSpace(raw) != "" {
		q, ok := validate.Q(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": raw})
			return jsonError(c, fiber.StatusBadRequest, "Enter a valid keyword.")
		}
		f.Query = q
	}
	f.Categories = splitList(c.Query("category"))
	f.Tags = splitList(c.Query("tags"))

	var ok bool
	if f.MinPrice, ok = priceParam(c.Query("minPrice")); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "minPrice"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid minPrice.")
	}
	if f.MaxPrice, ok = priceParam(c.Query("maxPrice")); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "maxPrice"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid maxPrice.")
	}
	f.Sort = catalog.ParseSort(c.Query("sort"))

	res, err := h.Catalog.Browse(c.UserContext(), f)
	if err != nil {
		applog.Error(c, "products.browse.fail", err, nil)
		return err
	}
	return c.JSON(res)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// priceParam accepts an empty value (0) or a finite non-negative number.
func priceParam(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
