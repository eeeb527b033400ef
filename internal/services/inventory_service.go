package services

import (
	"context"
	"errors"
	"fmt"

	"lrkr/internal/domain"
	"lrkr/internal/repos"
)

const (
	StatusInStock    = "IN_STOCK"
	StatusLowStock   = "LOW_STOCK"
	StatusOutOfStock = "OUT_OF_STOCK"
	StatusUntracked  = "UNTRACKED"

	lowStockBelow = 5
)

type InventoryService struct {
	Inv *repos.InventoryRepo
}

func NewInventoryService(inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Inv: inv}
}

// CheckAvailability converts stock into IN_STOCK / LOW_STOCK / OUT_OF_STOCK,
// or UNTRACKED when the product has no stock figure.
func (s *InventoryService) CheckAvailability(ctx context.Context, productID string) (domain.Availability, error) {
	stock, err := s.Inv.Stock(ctx, productID)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Availability{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	if err != nil {
		return domain.Availability{}, err
	}
	return Availability(stock), nil
}

func Availability(stock *int) domain.Availability {
	if stock == nil {
		return domain.Availability{Status: StatusUntracked}
	}
	qty := *stock
	status := StatusOutOfStock
	switch {
	case qty >= lowStockBelow:
		status = StatusInStock
	case qty > 0:
		status = StatusLowStock
	}
	return domain.Availability{Status: status, Qty: qty}
}

func (s *InventoryService) List(ctx context.Context) ([]repos.InventoryRow, error) {
	return s.Inv.ListAll(ctx)
}

// SetStock updates a product's stock ceiling. Negative values are rejected.
func (s *InventoryService) SetStock(ctx context.Context, productID string, stock *int) error {
	if stock != nil && *stock < 0 {
		return invalid(ErrInvalidStock, "Stock cannot be negative.")
	}
	err := s.Inv.SetStock(ctx, productID, stock)
	if errors.Is(err, repos.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return err
}
