package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// KeyPrefix is the durable slot name. One slot exists per visitor session.
const KeyPrefix = "lrkr_cart"

var (
	// ErrSlotEmpty is returned by Slot.Get when nothing is stored under the key.
	ErrSlotEmpty = errors.New("cart: slot empty")
	// ErrCorruptSnapshot means the stored value could not be used as cart lines.
	ErrCorruptSnapshot = errors.New("cart: corrupt snapshot")
)

// SlotKey returns the slot key for a session.
func SlotKey(sessionID string) string { return KeyPrefix + ":" + sessionID }

// Slot is a durable key/value cell. Implementations: MemorySlot,
// repos.CartSlotRepo (sqlite) and cache.RedisSlot.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Adapter syncs one cart to one slot key.
type Adapter struct {
	slot Slot
	key  string
}

func NewAdapter(slot Slot, key string) *Adapter {
	return &Adapter{slot: slot, key: key}
}

func (a *Adapter) Key() string { return a.key }

// Load returns the stored lines. It always returns a usable (possibly empty)
// slice; a non-nil error says why the stored state was discarded.
func (a *Adapter) Load(ctx context.Context) ([]Line, error) {
	raw, err := a.slot.Get(ctx, a.key)
	if errors.Is(err, ErrSlotEmpty) {
		return []Line{}, nil
	}
	if err != nil {
		return []Line{}, fmt.Errorf("load %s: %w", a.key, err)
	}
	lines, err := Decode(raw)
	if err != nil {
		return []Line{}, err
	}
	return lines, nil
}

// Save writes lines to the slot. An empty cart deletes the slot.
func (a *Adapter) Save(ctx context.Context, lines []Line) error {
	if len(lines) == 0 {
		if err := a.slot.Delete(ctx, a.key); err != nil {
			return fmt.Errorf("delete %s: %w", a.key, err)
		}
		return nil
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := a.slot.Put(ctx, a.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", a.key, err)
	}
	return nil
}

// Persist lets an Adapter act as a Store persister.
func (a *Adapter) Persist(ctx context.Context, lines []Line) error { return a.Save(ctx, lines) }

// Decode parses a stored snapshot and checks it against the cart invariants.
func Decode(raw []byte) ([]Line, error) {
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l.ProductID == "" {
			return nil, fmt.Errorf("%w: empty product id", ErrCorruptSnapshot)
		}
		if l.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity %d for %s", ErrCorruptSnapshot, l.Quantity, l.ProductID)
		}
		if _, dup := seen[l.ProductID]; dup {
			return nil, fmt.Errorf("%w: duplicate product %s", ErrCorruptSnapshot, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
	}
	if lines == nil {
		lines = []Line{}
	}
	return lines, nil
}
