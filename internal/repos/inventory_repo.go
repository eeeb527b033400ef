package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Row used by the admin stock listing. Stock nil means untracked.
type InventoryRow struct {
	ProductID string `db:"product_id" json:"productId"`
	Name      string `db:"name" json:"name"`
	Stock     *int   `db:"stock" json:"stock"`
}

// ListAll returns stock for every product, ordered by name.
func (r *InventoryRepo) ListAll(ctx context.Context) ([]InventoryRow, error) {
	rows := []InventoryRow{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id AS product_id, name, stock
		FROM products
		ORDER BY name, id
	`)
	return rows, err
}

// Stock returns the stock of a product; nil when untracked.
func (r *InventoryRepo) Stock(ctx context.Context, productID string) (*int, error) {
	var stock sql.NullInt64
	err := r.db.GetContext(ctx, &stock, `SELECT stock FROM products WHERE id = ?`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !stock.Valid {
		return nil, nil
	}
	n := int(stock.Int64)
	return &n, nil
}

// SetStock sets a product's stock; nil makes it untracked.
func (r *InventoryRepo) SetStock(ctx context.Context, productID string, stock *int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET stock = ? WHERE id = ?`, stock, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	return nil
}
