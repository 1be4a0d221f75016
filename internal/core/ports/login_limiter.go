package ports

import "context"

// LoginLimiter counts login attempts per client and reports whether another
// attempt is allowed.
type LoginLimiter interface {
	Allow(ctx context.Context, client string) (bool, error)
}
