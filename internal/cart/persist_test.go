package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrkr/internal/cart"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := cart.NewMemorySlot()
	a := cart.NewAdapter(slot, cart.SlotKey("s1"))

	lines := []cart.Line{cart.NewLine(coconut(), 1), cart.NewLine(mustard(), 2)}
	require.NoError(t, a.Save(ctx, lines))

	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestSaveEmptyDeletesSlot(t *testing.T) {
	ctx := context.Background()
	slot := cart.NewMemorySlot()
	a := cart.NewAdapter(slot, cart.SlotKey("s1"))
	require.NoError(t, a.Save(ctx, []cart.Line{cart.NewLine(coconut(), 1)}))
	require.NoError(t, a.Save(ctx, nil))

	_, err := slot.Get(ctx, cart.SlotKey("s1"))
	assert.ErrorIs(t, err, cart.ErrSlotEmpty)
}

func TestLoadAbsentIsEmpty(t *testing.T) {
	got, err := cart.NewAdapter(cart.NewMemorySlot(), cart.SlotKey("none")).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadCorruptFailsOpen(t *testing.T) {
	cases := map[string]string{
		"garbage":      "not json at all {",
		"object":       `{"productId":"x"}`,
		"zero qty":     `[{"productId":"x","name":"X","price":1,"quantity":0}]`,
		"missing id":   `[{"name":"X","price":1,"quantity":1}]`,
		"duplicate id": `[{"productId":"x","quantity":1},{"productId":"x","quantity":2}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			slot := cart.NewMemorySlot()
			require.NoError(t, slot.Put(ctx, cart.SlotKey("s"), []byte(raw)))

			got, err := cart.NewAdapter(slot, cart.SlotKey("s")).Load(ctx)
			assert.ErrorIs(t, err, cart.ErrCorruptSnapshot)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

type brokenSlot struct{}

func (brokenSlot) Get(context.Context, string) ([]byte, error) { return nil, errors.New("io") }
func (brokenSlot) Put(context.Context, string, []byte) error   { return nil }
func (brokenSlot) Delete(context.Context, string) error        { return nil }

func TestLoadBackendErrorIsEmpty(t *testing.T) {
	got, err := cart.NewAdapter(brokenSlot{}, "k").Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, cart.ErrCorruptSnapshot)
	assert.Empty(t, got)
}

func TestStorePersistsThroughAdapter(t *testing.T) {
	ctx := context.Background()
	slot := cart.NewMemorySlot()
	a := cart.NewAdapter(slot, cart.SlotKey("s2"))
	s := cart.NewStore(nil, cart.WithPersister(a))
	require.NoError(t, s.AddItem(ctx, mustard(), 2))

	reloaded, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.Lines(), reloaded)

	require.NoError(t, s.Clear(ctx))
	_, err = slot.Get(ctx, cart.SlotKey("s2"))
	assert.ErrorIs(t, err, cart.ErrSlotEmpty)
}
