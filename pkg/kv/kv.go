package kv

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kv: key not found")

const keyNamespace = "sf"

const (
	sessionPrefix   = "session"
	rateLimitPrefix = "rate_limit"
)

// Store is the persistence primitive every stateful component is built on.
// Production wiring uses the Redis client; tests use the in-memory store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// Counter is the fixed-window rate limit surface.
type Counter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// SessionKey builds the namespaced key for one storage field of a session,
// e.g. sf:session:<id>:cart.
func SessionKey(sessionID, field string) string {
	return buildKey(sessionPrefix, sessionID, field)
}

// RateLimitKey returns a namespaced key for rate limit counters.
func RateLimitKey(scope string) string {
	return buildKey(rateLimitPrefix, scope)
}

func buildKey(parts ...string) string {
	if len(parts) == 0 {
		return keyNamespace
	}
	clean := []string{keyNamespace}
	for _, part := range parts {
		if part == "" {
			continue
		}
		clean = append(clean, strings.TrimSpace(part))
	}
	return strings.Join(clean, ":")
}
