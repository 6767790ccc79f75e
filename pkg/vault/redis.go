package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-vault/pkg/redis"
)

type slotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SlotKey(name string) string
}

// RedisBackend keeps session-scoped slots in redis with an optional TTL.
type RedisBackend struct {
	client slotStore
	ttl    time.Duration
}

func NewRedisBackend(client slotStore, ttl time.Duration) (*RedisBackend, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisBackend{client: client, ttl: ttl}, nil
}

func (r *RedisBackend) Get(ctx context.Context, key Key) ([]byte, error) {
	value, err := r.client.Get(ctx, r.client.SlotKey(string(key)))
	if redis.IsMissing(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (r *RedisBackend) Put(ctx context.Context, key Key, value []byte) error {
	if err := r.client.Set(ctx, r.client.SlotKey(string(key)), string(value), r.ttl); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, key Key) error {
	if err := r.client.Del(ctx, r.client.SlotKey(string(key))); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
