package cache

import (
	"context"
	"testing"
	"time"
)

func newTestCache(ttl time.Duration) *Cache {
	return New(Config{
		DefaultTTL:      ttl,
		CleanupInterval: time.Hour, // keep the sweeper out of the way
	})
}

func TestCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(time.Minute)
	defer c.Close()

	t.Run("Get_Missing_IsMiss", func(t *testing.T) {
		if _, ok := c.Get(ctx, "/users/1"); ok {
			t.Fatal("expected miss for absent key")
		}
	})

	t.Run("Set_Then_Get", func(t *testing.T) {
		c.Set(ctx, "/users/1", []byte("alice"))
		val, ok := c.Get(ctx, "/users/1")
		if !ok {
			t.Fatal("expected hit")
		}
		if string(val) != "alice" {
			t.Fatalf("expected alice, got %s", val)
		}
	})

	t.Run("Set_Overwrites", func(t *testing.T) {
		c.Set(ctx, "/users/1", []byte("alice"))
		c.Set(ctx, "/users/1", []byte("bob"))
		val, _ := c.Get(ctx, "/users/1")
		if string(val) != "bob" {
			t.Fatalf("expected bob, got %s", val)
		}
	})
}

func TestCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(30 * time.Millisecond)
	defer c.Close()

	c.Set(ctx, "/users/1", []byte("alice"))
	if _, ok := c.Get(ctx, "/users/1"); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Get(ctx, "/users/1"); ok {
		t.Fatal("expected miss after TTL elapsed")
	}
	// The expired entry was reclaimed by the read, not just hidden.
	if c.Size() != 0 {
		t.Fatalf("expected lazy eviction, size is %d", c.Size())
	}
}

func TestCacheInvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(time.Minute)
	defer c.Close()

	c.Set(ctx, "/users/1", []byte("a"))
	c.Set(ctx, "/users?page=1&limit=5&search=&sortBy=id&order=asc", []byte("b"))
	c.Set(ctx, "/posts/1", []byte("c"))

	c.InvalidatePrefix(ctx, "/users")

	if _, ok := c.Get(ctx, "/users/1"); ok {
		t.Fatal("entity key under prefix should be gone")
	}
	if _, ok := c.Get(ctx, "/users?page=1&limit=5&search=&sortBy=id&order=asc"); ok {
		t.Fatal("list key under prefix should be gone")
	}
	if _, ok := c.Get(ctx, "/posts/1"); !ok {
		t.Fatal("key outside prefix must be unaffected")
	}

	// Invalidating an already-empty namespace is a no-op.
	c.InvalidatePrefix(ctx, "/users")
	c.InvalidatePrefix(ctx, "/never-populated")
}

func TestCacheBackgroundSweep(t *testing.T) {
	ctx := context.Background()
	c := New(Config{
		DefaultTTL:      10 * time.Millisecond,
		CleanupInterval: 20 * time.Millisecond,
	})
	defer c.Close()

	c.Set(ctx, "/users/1", []byte("a"))
	c.Set(ctx, "/users/2", []byte("b"))

	deadline := time.Now().Add(time.Second)
	for c.Size() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if c.Size() != 0 {
		t.Fatalf("sweep did not reclaim expired entries, size is %d", c.Size())
	}
}
