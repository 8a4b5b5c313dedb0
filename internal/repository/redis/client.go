package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewClient connects to Redis. It returns nil when Redis is not configured
// or unreachable; callers then run without rate limiting.
func NewClient(ctx context.Context, addr, password string) *redis.Client {
	if addr == "" {
		log.Info().Str("component", "redis").Msg("REDIS_URL not set, rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Str("component", "redis").Err(err).Msg("could not connect to Redis, rate limiting disabled")
		client.Close()
		return nil
	}

	log.Info().Str("component", "redis").Msg("connected successfully")
	return client
}

// RateLimiter is a fixed-window counter per key.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: int64(limit), window: window, prefix: "ratelimit:solve:"}
}

// Allow counts one hit for key and reports whether it is within the limit
// for the current window.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := r.prefix + key

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= r.limit, nil
}

func (r *RateLimiter) PingContext(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
