package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SignInThrottle counts failed sign-in attempts per username in Redis.
// Key format: signin_fail:<username>, expiring after the lockout window so a
// locked account frees itself without operator action.
type SignInThrottle struct {
	client      *redis.Client
	maxAttempts int
	lockout     time.Duration
}

// NewSignInThrottle wraps the given Redis client. maxAttempts failures within
// the lockout window block further attempts until the window expires.
func NewSignInThrottle(client *redis.Client, maxAttempts int, lockout time.Duration) *SignInThrottle {
	return &SignInThrottle{client: client, maxAttempts: maxAttempts, lockout: lockout}
}

// Blocked reports whether the username has exhausted its attempts.
func (t *SignInThrottle) Blocked(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(username)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxAttempts, nil
}

// RecordFailure counts one failed attempt and refreshes the lockout window.
func (t *SignInThrottle) RecordFailure(ctx context.Context, username string) error {
	key := t.key(username)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.lockout)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful sign-in.
func (t *SignInThrottle) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, t.key(username)).Err()
}

func (t *SignInThrottle) key(username string) string {
	return "signin_fail:" + username
}
