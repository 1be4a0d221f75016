package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	defaultWindow      = time.Minute
)

// LoginLimiter is a fixed-window attempt counter.
// Key format: login:attempts:<client>
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginLimiter allows maxAttempts per client within each window.
// Non-positive values fall back to 10 attempts per minute.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{
		client:      client,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

// Allow counts one attempt for client and reports whether it is within the
// limit. The window starts with the first attempt. The counter and its expiry
// are written in one transaction, and EXPIRE NX restores a missing TTL on any
// later attempt without extending a running window.
func (l *LoginLimiter) Allow(ctx context.Context, client string) (bool, error) {
	key := l.key(client)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("login limiter: %w", err)
	}
	return incr.Val() <= l.maxAttempts, nil
}

// Ping lets the readiness probe check the throttle backend.
func (l *LoginLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *LoginLimiter) key(client string) string {
	return "login:attempts:" + client
}
