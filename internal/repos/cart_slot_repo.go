package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"lrkr/internal/cart"
)

// CartSlotRepo stores serialized carts in the cart_slots table.
type CartSlotRepo struct{ db *sqlx.DB }

func NewCartSlotRepo(db *sqlx.DB) *CartSlotRepo { return &CartSlotRepo{db: db} }

func (r *CartSlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var payload string
	err := r.db.GetContext(ctx, &payload, `SELECT payload FROM cart_slots WHERE slot_key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, cart.ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

func (r *CartSlotRepo) Put(ctx context.Context, key string, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_slots(slot_key, payload, updated_at)
		VALUES(?, ?, ?)
		ON CONFLICT(slot_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, key, string(data), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *CartSlotRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_slots WHERE slot_key = ?`, key)
	return err
}

// PurgeOlderThan removes slots not written since cutoff and reports how many went.
func (r *CartSlotRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_slots WHERE updated_at < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
