// Package cache holds the Redis-backed cart slot.
package cache

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"lrkr/internal/cart"
)

// RedisSlot stores cart snapshots as plain strings with a sliding TTL.
type RedisSlot struct {
	client  redis.Cmdable
	baseTTL time.Duration
	jitter  time.Duration
}

// NewRedisSlot returns a slot whose keys expire ttl after the last write,
// plus up to an hour of jitter so abandoned carts do not expire in bursts.
func NewRedisSlot(client redis.Cmdable, ttl time.Duration) *RedisSlot {
	return &RedisSlot{client: client, baseTTL: ttl, jitter: time.Hour}
}

func (r *RedisSlot) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisSlot) Put(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, string(data), r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisSlot) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisSlot) ttl() time.Duration {
	if r.baseTTL <= 0 {
		return 0
	}
	if r.jitter <= 0 {
		return r.baseTTL
	}
	return r.baseTTL + time.Duration(rand.Int63n(int64(r.jitter)))
}
