package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lrkr/internal/domain"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("not found")

const DefaultFeaturedLimit = 3

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
    p.id, p.category_id, c.name AS category, p.name, p.description, p.long_description,
    p.image_url, p.size, p.origin, p.usage_tips, p.characteristics_json, p.price, p.stock,
    p.is_featured, p.created_at
  FROM products p
  JOIN categories c ON c.id = p.category_id`

// List returns every product, newest first.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := r.db.SelectContext(ctx, &out, `SELECT`+productCols+`
  ORDER BY p.created_at DESC, p.id`); err != nil {
		return nil, err
	}
	return decodeAll(out)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `SELECT`+productCols+`
  WHERE p.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, err
	}
	return p, decode(&p)
}

// ListFeatured returns up to limit featured products; limit <= 0 uses DefaultFeaturedLimit.
func (r *ProductRepo) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	var out []domain.Product
	if err := r.db.SelectContext(ctx, &out, `SELECT`+productCols+`
  WHERE p.is_featured = 1
  ORDER BY p.created_at DESC, p.id
  LIMIT ?`, limit); err != nil {
		return nil, err
	}
	return decodeAll(out)
}

// ListByCategory matches the category slug or its display name (case-insensitive).
func (r *ProductRepo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	if err := r.db.SelectContext(ctx, &out, `SELECT`+productCols+`
  WHERE p.category_id = ? OR LOWER(c.name) = LOWER(?)
  ORDER BY p.created_at DESC, p.id`, category, category); err != nil {
		return nil, err
	}
	return decodeAll(out)
}

func decodeAll(ps []domain.Product) ([]domain.Product, error) {
	if ps == nil {
		return []domain.Product{}, nil
	}
	for i := range ps {
		if err := decode(&ps[i]); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

func decode(p *domain.Product) error {
	p.Characteristics = []string{}
	if p.CharsJSON == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(p.CharsJSON), &p.Characteristics); err != nil {
		return fmt.Errorf("product %s characteristics: %w", p.ID, err)
	}
	return nil
}
