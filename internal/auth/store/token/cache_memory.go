package token

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskdeck/pkg/platform/sentinel"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// InMemoryCache implements Cache for tests and local development. The clock
// is injected so tests can simulate TTL expiry without sleeping.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory constructs an empty in-memory cache using the real clock.
func NewMemory() *InMemoryCache {
	return NewMemoryWithClock(time.Now)
}

// NewMemoryWithClock constructs an in-memory cache with a custom clock.
func NewMemoryWithClock(now func() time.Time) *InMemoryCache {
	return &InMemoryCache{
		entries: make(map[string]entry),
		now:     now,
	}
}

func (c *InMemoryCache) Put(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *InMemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !e.expiresAt.After(c.now()) {
		return "", fmt.Errorf("cache key %q: %w", key, sentinel.ErrNotFound)
	}
	return e.value, nil
}
