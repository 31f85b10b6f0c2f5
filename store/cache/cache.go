// Package cache provides the in-memory TTL cache that fronts the record
// store, plus the key derivation scheme shared by every namespace.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Config holds the cache configuration.
type Config struct {
	// DefaultTTL is how long a populated entry stays fresh. A zero value
	// falls back to 5 minutes.
	DefaultTTL time.Duration
	// CleanupInterval is how often the background sweep reclaims expired
	// entries. A zero value falls back to 1 minute.
	CleanupInterval time.Duration
}

// Repository is the surface shared by the in-memory and Redis backends.
// Values are raw bytes; callers marshal and unmarshal their own payloads.
// A miss, an expired entry, and invalidating an empty namespace are all
// silent outcomes, never errors.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	InvalidatePrefix(ctx context.Context, prefix string)
	Close()
}

type entry struct {
	value      []byte
	insertedAt time.Time
}

// Cache is a process-wide string-keyed cache with TTL expiry on read and
// prefix-scoped invalidation. All operations hold the mutex across the
// full check-then-act sequence; requests are served on parallel
// goroutines.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	done chan struct{}
	once sync.Once
}

// New creates a cache and starts its cleanup goroutine.
func New(config Config) *Cache {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = 5 * time.Minute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 1 * time.Minute
	}

	c := &Cache{
		entries: make(map[string]entry),
		ttl:     config.DefaultTTL,
		done:    make(chan struct{}),
	}
	go c.cleanupLoop(config.CleanupInterval)
	return c
}

// Set unconditionally overwrites any entry under key with a fresh
// insertion timestamp.
func (c *Cache) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, insertedAt: time.Now()}
}

// Get returns the value under key if it exists and has not outlived the
// TTL. An expired entry behaves as a miss and is reclaimed on the spot.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// InvalidatePrefix removes every entry whose key starts with prefix.
// Invalidating an empty namespace is a no-op.
func (c *Cache) InvalidatePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of physically present entries, expired or not.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine. The cache stays usable afterwards;
// expired entries are then reclaimed lazily on read only.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.done:
			return
		}
	}
}

func (c *Cache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, e := range c.entries {
		if time.Since(e.insertedAt) > c.ttl {
			delete(c.entries, key)
			evicted++
		}
	}
	if evicted > 0 {
		slog.Debug("cache sweep reclaimed expired entries", "evicted", evicted, "remaining", len(c.entries))
	}
}
