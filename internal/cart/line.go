// Package cart holds the shopping cart engine: the line collection and its
// invariants, the pure transitions that mutate it, and the adapter that keeps a
// durable snapshot of it.
package cart

import "lrkr/internal/domain"

// Line is one row of the cart. Name, Price, ImageURL and Stock are a snapshot
// taken when the product was first added and are never refreshed from the catalog.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	Stock     *int    `json:"stock,omitempty"`
	Quantity  int     `json:"quantity"`
}

// NewLine copies the fields a cart line needs out of p. Anything else on the
// product is ignored.
func NewLine(p domain.Product, qty int) Line {
	l := Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  qty,
	}
	if p.Stock != nil {
		s := *p.Stock
		l.Stock = &s
	}
	return l
}

// Subtotal is quantity * price for this line, unrounded.
func (l Line) Subtotal() float64 { return float64(l.Quantity) * l.Price }

func (l Line) clone() Line {
	if l.Stock != nil {
		s := *l.Stock
		l.Stock = &s
	}
	return l
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = l.clone()
	}
	return out
}

// Total is the sum of quantity * price over lines. No rounding is applied.
func Total(lines []Line) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities over lines.
func ItemCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
