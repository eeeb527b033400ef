// Package catalog contains the pure browse predicates used by the product listing:
// text search, category, price range and characteristic filters plus sorting.
// None of them modify their input.
package catalog

import (
	"math"
	"sort"
	"strings"

	"lrkr/internal/domain"
)

// TextFilter keeps products whose name or description contains query,
// case-insensitively. A blank query returns the input unfiltered.
func TextFilter(products []domain.Product, query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}
	return keep(products, func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	})
}

// CategoryFilter keeps products in any of the selected categories, matched by
// display name or slug. An empty selection returns the input unfiltered.
func CategoryFilter(products []domain.Product, selected []string) []domain.Product {
	if len(selected) == 0 {
		return products
	}
	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		set[s] = struct{}{}
	}
	return keep(products, func(p domain.Product) bool {
		if _, ok := set[p.Category]; ok {
			return true
		}
		_, ok := set[p.CategoryID]
		return ok
	})
}

// PriceRangeFilter keeps products with min <= price <= max.
func PriceRangeFilter(products []domain.Product, min, max float64) []domain.Product {
	return keep(products, func(p domain.Product) bool {
		return p.Price >= min && p.Price <= max
	})
}

// TagFilter keeps products carrying every one of tags.
func TagFilter(products []domain.Product, tags []string) []domain.Product {
	if len(tags) == 0 {
		return products
	}
	return keep(products, func(p domain.Product) bool {
		for _, t := range tags {
			if !p.HasCharacteristic(t) {
				return false
			}
		}
		return true
	})
}

// Categories returns the distinct category names, sorted.
func Categories(products []domain.Product) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// MaxPrice is the highest price in products, rounded up to a whole unit. Zero for none.
func MaxPrice(products []domain.Product) float64 {
	m := 0.0
	for _, p := range products {
		if p.Price > m {
			m = p.Price
		}
	}
	return math.Ceil(m)
}

// Filters is the full set of browse criteria. Zero values disable a criterion;
// MaxPrice <= 0 means no upper bound.
type Filters struct {
	Query      string
	Categories []string
	MinPrice   float64
	MaxPrice   float64
	Tags       []string
	Sort       SortOption
}

// Apply runs every filter in f and then sorts.
func Apply(products []domain.Product, f Filters) []domain.Product {
	out := TextFilter(products, f.Query)
	out = CategoryFilter(out, f.Categories)
	if f.MinPrice > 0 || f.MaxPrice > 0 {
		max := f.MaxPrice
		if max <= 0 {
			max = math.Inf(1)
		}
		out = PriceRangeFilter(out, f.MinPrice, max)
	}
	out = TagFilter(out, f.Tags)
	return Sort(out, f.Sort)
}

func keep(products []domain.Product, pred func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
