package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrkr/internal/cart"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisSlot, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSlot(client, ttl), mr
}

func TestGetMissing(t *testing.T) {
	slot, _ := setupTestRedis(t, time.Hour)
	_, err := slot.Get(context.Background(), cart.SlotKey("nobody"))
	assert.ErrorIs(t, err, cart.ErrSlotEmpty)
}

func TestAdapterRoundTripOverRedis(t *testing.T) {
	slot, mr := setupTestRedis(t, 24*time.Hour)
	ctx := context.Background()
	key := cart.SlotKey("sid-1")
	a := cart.NewAdapter(slot, key)

	stock := 5
	lines := []cart.Line{
		{ProductID: "mustard-oil", Name: "Pure Mustard Oil", Price: 180, Stock: &stock, Quantity: 2},
		{ProductID: "clove-oil", Name: "Clove Bud Oil", Price: 750, Quantity: 1},
	}
	require.NoError(t, a.Save(ctx, lines))
	assert.True(t, mr.Exists(key))

	ttl := mr.TTL(key)
	assert.GreaterOrEqual(t, ttl, 24*time.Hour)
	assert.Less(t, ttl, 25*time.Hour)

	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, lines, got)

	require.NoError(t, a.Save(ctx, []cart.Line{}))
	assert.False(t, mr.Exists(key))
}

func TestExpiredSlotIsEmpty(t *testing.T) {
	slot, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, slot.Put(ctx, "k", []byte(`[{"productId":"a","quantity":1}]`)))

	mr.FastForward(3 * time.Hour)
	_, err := slot.Get(ctx, "k")
	assert.ErrorIs(t, err, cart.ErrSlotEmpty)
}

func TestCorruptValueFailsOpen(t *testing.T) {
	slot, mr := setupTestRedis(t, time.Hour)
	require.NoError(t, mr.Set(cart.SlotKey("s"), "%%%"))

	got, err := cart.NewAdapter(slot, cart.SlotKey("s")).Load(context.Background())
	assert.ErrorIs(t, err, cart.ErrCorruptSnapshot)
	assert.Empty(t, got)
}

func TestZeroTTLNeverExpires(t *testing.T) {
	slot, mr := setupTestRedis(t, 0)
	require.NoError(t, slot.Put(context.Background(), "k", []byte("[]")))
	assert.Equal(t, time.Duration(0), mr.TTL("k"))
}

func TestBackendDown(t *testing.T) {
	slot, mr := setupTestRedis(t, time.Hour)
	mr.Close()
	_, err := slot.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cart.ErrSlotEmpty)
}
