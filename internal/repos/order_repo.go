package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lrkr/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// orderRow is the flat table shape of an order header.
type orderRow struct {
	ID            string  `db:"id"`
	UserID        string  `db:"user_id"`
	TotalAmount   float64 `db:"total_amount"`
	Status        string  `db:"status"`
	TransactionID string  `db:"transaction_id"`
	CreatedAt     string  `db:"created_at"`
	domain.ShippingAddress
}

func (r orderRow) order() domain.Order {
	return domain.Order{
		ID:              r.ID,
		UserID:          r.UserID,
		TotalAmount:     r.TotalAmount,
		Status:          r.Status,
		TransactionID:   r.TransactionID,
		CreatedAt:       r.CreatedAt,
		ShippingAddress: r.ShippingAddress,
	}
}

const orderCols = `id, user_id, total_amount, status, transaction_id, created_at,
	customer_name, customer_email, street, city, state, zip, country`

// Create inserts the order header and its items in one transaction.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	a := o.ShippingAddress
	if _, err := tx.ExecContext(ctx, `
	  INSERT INTO orders
	    (id, user_id, total_amount, status, transaction_id, created_at,
	     customer_name, customer_email, street, city, state, zip, country)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.UserID, o.TotalAmount, o.Status, o.TransactionID, o.CreatedAt,
		a.CustomerName, a.CustomerEmail, a.Street, a.City, a.State, a.Zip, a.Country); err != nil {
		return err
	}
	for i, it := range o.Items {
		if _, err := tx.ExecContext(ctx, `
		  INSERT INTO order_items(order_id, position, product_id, name, price, image_url, quantity)
		  VALUES(?, ?, ?, ?, ?, ?, ?)
		`, o.ID, i, it.ProductID, it.Name, it.Price, it.ImageURL, it.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get returns an order with its items in submission order.
func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	var row orderRow
	err := r.db.GetContext(ctx, &row, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, err
	}
	o := row.order()
	o.Items = []domain.OrderItem{}
	if err := r.db.SelectContext(ctx, &o.Items, `
		SELECT product_id, name, price, image_url, quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, id); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// ListLatest returns order headers, newest first. Items are not loaded.
func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+orderCols+`
		FROM orders
		ORDER BY created_at DESC
		LIMIT ?
	`, limit); err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

// ListByUser returns the orders placed for userID, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+orderCols+`
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID); err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return nil
}

func toOrders(rows []orderRow) []domain.Order {
	out := make([]domain.Order, len(rows))
	for i, r := range rows {
		out[i] = r.order()
	}
	return out
}
