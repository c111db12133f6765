package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the request rate limiter. It is deliberately not a data
// cache: spatial reads always go back to Postgres.
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr string, password string, poolSize int) *RedisClient {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,

		PoolSize:     poolSize,
		MinIdleConns: 2,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	})

	return &RedisClient{client: client}
}

// IncrWindow bumps a fixed-window counter and returns the new count. The TTL
// is only set when the key is created, so the window ends at a stable time.
func (rc *RedisClient) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := rc.client.Pipeline()

	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return incr.Val(), nil
}

func (rc *RedisClient) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}
