package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter implements a fixed-window request counter in Redis.
// Windows are keyed per client and per purpose so that, say, login
// attempts and AI calls are counted separately.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

const (
	defaultLimit  = 10
	defaultWindow = 15 * time.Minute
)

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{
		client: client,
		limit:  defaultLimit,
		window: defaultWindow,
	}
}

// NewLimiterWithOptions creates a limiter with a custom limit and window.
func NewLimiterWithOptions(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{client: client, limit: limit, window: window}
}

func requestKey(purpose, client string) string {
	return fmt.Sprintf("ratelimit:%s:%s", purpose, client)
}

// Check reports whether the client has exhausted its window for the purpose.
func (l *Limiter) Check(ctx context.Context, clientID, purpose string) (bool, error) {
	count, err := l.client.Get(ctx, requestKey(purpose, clientID)).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to read rate limit counter: %w", err)
	}
	return count >= l.limit, nil
}

// Record counts one request for the client. The window TTL is set on
// the first request and left alone afterwards (fixed window).
func (l *Limiter) Record(ctx context.Context, clientID, purpose string) error {
	key := requestKey(purpose, clientID)

	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}
	_ = incr

	return nil
}
