package ports

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenCache is the slice of the Redis client the core depends on:
// token denylisting in auth and short-lived stats caching. *redis.Client
// satisfies it; tests substitute an in-memory mock.
type TokenCache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}
