package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bookhaven/backend/internal/domain/checkout"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisSessionStore holds in-flight checkout sessions in Redis, one per user.
// Sessions expire after the configured TTL so an abandoned checkout does not
// linger forever.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a session store on an existing Redis client
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(userID uuid.UUID) string {
	return "checkout:session:" + userID.String()
}

// Get returns the user's checkout session, or shared.ErrNotFound if none exists
func (s *RedisSessionStore) Get(ctx context.Context, userID uuid.UUID) (*checkout.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkout session: %w", err)
	}

	var session checkout.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}
	return &session, nil
}

// Put stores the session and refreshes its TTL
func (s *RedisSessionStore) Put(ctx context.Context, session *checkout.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize checkout session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write checkout session: %w", err)
	}
	return nil
}

// Delete removes the user's checkout session
func (s *RedisSessionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete checkout session: %w", err)
	}
	return nil
}
