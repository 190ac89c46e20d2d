package cache

import (
	appcart "github.com/bookhaven/backend/internal/application/cart"
	appcheckout "github.com/bookhaven/backend/internal/application/checkout"
)

// Compile-time checks that the Redis implementations satisfy the
// application-layer ports.
var (
	_ appcart.CartCache            = (*RedisCartCache)(nil)
	_ appcheckout.SessionStore     = (*RedisSessionStore)(nil)
	_ appcheckout.IdempotencyStore = (*RedisIdempotencyStore)(nil)
)
