package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"lrkr/internal/catalog"
	"lrkr/internal/repos"
	"lrkr/internal/services"
)

func TestCatalogService_Browse(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewProductRepo(db))
	ctx := context.Background()

	res, err := svc.Browse(ctx, catalog.Filters{Query: "oil", Sort: catalog.SortPriceAsc})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total == 0 || res.Products[0].ID != "mustard-oil" {
		t.Fatalf("cheapest oil first, got %+v", res.Products)
	}
	if len(res.Categories) != 4 || res.MaxPrice != 750 {
		t.Fatalf("facets: %v %v", res.Categories, res.MaxPrice)
	}

	res, err = svc.Browse(ctx, catalog.Filters{Tags: []string{"water-soluble", "vegan"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 || res.Products[0].ID != "ginger-extract" || res.Sort != catalog.SortLatest {
		t.Fatalf("tag filter: %+v", res)
	}
}

func TestCatalogService_ConcurrentListsShareNothing(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewProductRepo(db))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ps, err := svc.ListProducts(ctx)
			if err != nil {
				t.Error(err)
				return
			}
			if len(ps) != 6 {
				t.Errorf("want 6 products, got %d", len(ps))
			}
			ps[0].Name = "scribbled"
		}()
	}
	wg.Wait()

	p, err := svc.GetProduct(ctx, "mustard-oil")
	if err != nil || p.Name != "Pure Mustard Oil" {
		t.Fatalf("get: %v %q", err, p.Name)
	}
	if _, err := svc.GetProduct(ctx, "nope"); !errors.Is(err, services.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestCatalogService_CancelledCallerDoesNotFailOthers(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewProductRepo(db))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.ListProducts(cancelled); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller: want context.Canceled, got %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				// cancelled callers drop out without touching the shared load
				_, _ = svc.ListProducts(cancelled)
				return
			}
			ps, err := svc.ListProducts(context.Background())
			if err != nil || len(ps) != 6 {
				t.Errorf("caller %d: %d products, %v", i, len(ps), err)
			}
		}(i)
	}
	wg.Wait()
}
