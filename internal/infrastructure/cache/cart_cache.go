package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bookhaven/backend/internal/domain/cart"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCartCache is a read-through cache for carts keyed by user. A miss is
// reported as shared.ErrNotFound so callers fall back to the database.
type RedisCartCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartCache creates a cart cache on an existing Redis client
func NewRedisCartCache(client *redis.Client, ttl time.Duration) *RedisCartCache {
	return &RedisCartCache{
		client: client,
		ttl:    ttl,
	}
}

func cartKey(userID uuid.UUID) string {
	return "cart:user:" + userID.String()
}

// Get returns the cached cart for the user, or shared.ErrNotFound on a miss
func (c *RedisCartCache) Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	data, err := c.client.Get(ctx, cartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart cache: %w", err)
	}

	var cached cart.Cart
	if err := json.Unmarshal(data, &cached); err != nil {
		// A corrupt entry is treated as a miss so it gets rewritten
		return nil, shared.ErrNotFound
	}
	return &cached, nil
}

// Set stores the cart under its user's key
func (c *RedisCartCache) Set(ctx context.Context, cr *cart.Cart) error {
	data, err := json.Marshal(cr)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}
	if err := c.client.Set(ctx, cartKey(cr.UserID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cart cache: %w", err)
	}
	return nil
}

// Invalidate drops the user's cached cart
func (c *RedisCartCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cart cache: %w", err)
	}
	return nil
}
