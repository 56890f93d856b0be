// Package token provides the ephemeral key-value cache behind session
// tokens. Expired keys are indistinguishable from absent ones.
package token

import (
	"context"
	"time"
)

// Cache is a TTL-capable key-value store over opaque strings.
type Cache interface {
	// Put sets key to value with the given TTL, silently overwriting any
	// existing entry.
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the value for key, or sentinel.ErrNotFound (wrapped) when
	// the key is absent or its TTL has elapsed.
	Get(ctx context.Context, key string) (string, error)
}
