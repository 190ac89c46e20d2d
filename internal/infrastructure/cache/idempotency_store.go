package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisIdempotencyStore maps a place-order idempotency key to the order it
// produced. Keys expire after the configured TTL; a replay past the window
// creates a fresh order, which matches how long clients retry. The Redis key
// embeds the user ID, so one shopper's key can never replay another's order.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIdempotencyStore creates an idempotency store on an existing Redis client
func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client: client,
		ttl:    ttl,
	}
}

func idempotencyKey(userID uuid.UUID, key string) string {
	return "checkout:idempotency:" + userID.String() + ":" + key
}

// Get returns the order this user previously created under this key, if any
func (s *RedisIdempotencyStore) Get(ctx context.Context, userID uuid.UUID, key string) (uuid.UUID, bool, error) {
	value, err := s.client.Get(ctx, idempotencyKey(userID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to read idempotency key: %w", err)
	}

	orderID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("corrupt idempotency entry for key %q: %w", key, err)
	}
	return orderID, true, nil
}

// Set records the order created under this key. SETNX keeps the first order
// authoritative if two submissions race.
func (s *RedisIdempotencyStore) Set(ctx context.Context, userID uuid.UUID, key string, orderID uuid.UUID) error {
	if err := s.client.SetNX(ctx, idempotencyKey(userID, key), orderID.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to record idempotency key: %w", err)
	}
	return nil
}
