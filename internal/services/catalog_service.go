package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"lrkr/internal/catalog"
	"lrkr/internal/domain"
	"lrkr/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo

	sf singleflight.Group
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

// ListProducts loads the full product list. Concurrent callers share one query,
// which runs detached from the first caller's cancellation.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch := s.sf.DoChan("products", func() (any, error) {
		return s.Prods.List(context.WithoutCancel(ctx))
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	v, err := res.Val, res.Err
	if err != nil {
		return nil, err
	}
	// callers may filter in place, so each gets its own slice
	shared := v.([]domain.Product)
	out := make([]domain.Product, len(shared))
	copy(out, shared)
	return out, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.Prods.Get(ctx, id)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return p, err
}

func (s *CatalogService) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	return s.Prods.ListFeatured(ctx, limit)
}

func (s *CatalogService) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.Prods.ListByCategory(ctx, category)
}

// BrowseResult is one page of the product listing plus the facets the filter UI needs.
type BrowseResult struct {
	Products   []domain.Product   `json:"products"`
	Total      int                `json:"total"`
	Categories []string           `json:"categories"`
	MaxPrice   float64            `json:"maxPrice"`
	Sort       catalog.SortOption `json:"sort"`
}

// Browse applies f to the full catalog. Facets are computed over the unfiltered list.
func (s *CatalogService) Browse(ctx context.Context, f catalog.Filters) (BrowseResult, error) {
	all, err := s.ListProducts(ctx)
	if err != nil {
		return BrowseResult{}, err
	}
	if f.Sort == "" {
		f.Sort = catalog.SortLatest
	}
	out := catalog.Apply(all, f)
	return BrowseResult{
		Products:   out,
		Total:      len(out),
		Categories: catalog.Categories(all),
		MaxPrice:   catalog.MaxPrice(all),
		Sort:       f.Sort,
	}, nil
}
