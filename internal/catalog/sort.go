package catalog

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"lrkr/internal/domain"
)

type SortOption string

const (
	SortLatest    SortOption = "latest"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNameAsc   SortOption = "name-asc"
	SortNameDesc  SortOption = "name-desc"
)

var sortOptions = []SortOption{SortLatest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc}

// ParseSort maps a query value to a SortOption; anything unknown is SortLatest.
func ParseSort(s string) SortOption {
	for _, o := range sortOptions {
		if string(o) == s {
			return o
		}
	}
	return SortLatest
}

// Sort returns a sorted copy of products. Equal keys keep their input order.
// SortLatest keeps the input order as-is.
func Sort(products []domain.Product, opt SortOption) []domain.Product {
	out := slices.Clone(products)
	switch opt {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmpFloat(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmpFloat(b.Price, a.Price) })
	case SortNameAsc, SortNameDesc:
		// collators keep internal buffers, so one per call
		col := collate.New(language.English, collate.IgnoreCase)
		desc := opt == SortNameDesc
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			if desc {
				return col.CompareString(b.Name, a.Name)
			}
			return col.CompareString(a.Name, b.Name)
		})
	}
	return out
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
