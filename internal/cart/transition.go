package cart

import (
	"math"

	"lrkr/internal/domain"
)

type ActionKind string

const (
	ActionAdd    ActionKind = "add"
	ActionRemove ActionKind = "remove"
	ActionUpdate ActionKind = "update"
	ActionClear  ActionKind = "clear"
)

// Action describes one cart mutation. Product is only read for ActionAdd;
// ProductID is used by remove and update.
type Action struct {
	Kind      ActionKind
	Product   domain.Product
	ProductID string
	Quantity  int
}

func Add(p domain.Product, qty int) Action {
	return Action{Kind: ActionAdd, Product: p, ProductID: p.ID, Quantity: qty}
}

func Remove(productID string) Action {
	return Action{Kind: ActionRemove, ProductID: productID}
}

func Update(productID string, qty int) Action {
	return Action{Kind: ActionUpdate, ProductID: productID, Quantity: qty}
}

func Clear() Action { return Action{Kind: ActionClear} }

// Apply returns the lines that result from applying a to lines. The input
// slice is never modified. Every result keeps one line per product id and
// quantity >= 1.
func Apply(lines []Line, a Action) []Line {
	switch a.Kind {
	case ActionAdd:
		return addItem(lines, a.Product, a.Quantity)
	case ActionRemove:
		return removeItem(lines, a.ProductID)
	case ActionUpdate:
		return updateQuantity(lines, a.ProductID, a.Quantity)
	case ActionClear:
		return []Line{}
	default:
		return cloneLines(lines)
	}
}

func indexOf(lines []Line, productID string) int {
	for i, l := range lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// addItem coerces qty <= 0 to 1. It does not clamp to stock; the sum
// saturates at math.MaxInt.
func addItem(lines []Line, p domain.Product, qty int) []Line {
	if qty < 1 {
		qty = 1
	}
	out := cloneLines(lines)
	if i := indexOf(out, p.ID); i >= 0 {
		if qty > math.MaxInt-out[i].Quantity {
			out[i].Quantity = math.MaxInt
		} else {
			out[i].Quantity += qty
		}
		return out
	}
	return append(out, NewLine(p, qty))
}

func removeItem(lines []Line, productID string) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != productID {
			out = append(out, l.clone())
		}
	}
	return out
}

func updateQuantity(lines []Line, productID string, qty int) []Line {
	if qty <= 0 {
		return removeItem(lines, productID)
	}
	out := cloneLines(lines)
	i := indexOf(out, productID)
	if i < 0 {
		return out
	}
	if s := out[i].Stock; s != nil && qty > *s {
		qty = *s
	}
	// a tracked ceiling of 0 leaves nothing to keep
	if qty <= 0 {
		return removeItem(out, productID)
	}
	out[i].Quantity = qty
	return out
}
