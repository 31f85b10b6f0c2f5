// Package store provides cached access to the record collections. Every
// read goes through a namespace cache in front of the driver; every
// write invalidates the namespaces it can affect.
package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/placedex/placedex/internal/profile"
	"github.com/placedex/placedex/store/cache"
)

// Store provides record access to all collections with a time-bounded
// cache in front of the driver.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Caches, one per namespace
	userCache    cache.Repository
	postCache    cache.Repository
	commentCache cache.Repository

	// Distinct cache backends to close; the Redis backend serves all
	// namespaces through one client.
	cacheBackends []cache.Repository
}

// New creates a new instance of Store. The cache backend is in-memory
// unless the profile names a Redis address.
func New(driver Driver, p *profile.Profile) (*Store, error) {
	s := &Store{
		driver:  driver,
		profile: p,
	}

	if p.CacheRedisAddr != "" {
		shared, err := cache.NewRedisCache(&cache.RedisConfig{
			Addr:      p.CacheRedisAddr,
			Password:  p.CacheRedisPassword,
			KeyPrefix: "placedex:",
			TTL:       p.CacheTTL(),
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis cache backend")
		}
		s.userCache = shared
		s.postCache = shared
		s.commentCache = shared
		s.cacheBackends = []cache.Repository{shared}
		return s, nil
	}

	cacheConfig := cache.Config{
		DefaultTTL:      p.CacheTTL(),
		CleanupInterval: p.CacheCleanupInterval(),
	}
	s.userCache = cache.New(cacheConfig)
	s.postCache = cache.New(cacheConfig)
	s.commentCache = cache.New(cacheConfig)
	s.cacheBackends = []cache.Repository{s.userCache, s.postCache, s.commentCache}
	return s, nil
}

// Ping verifies the driver connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.driver.Ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	for _, c := range s.cacheBackends {
		c.Close()
	}
	return s.driver.Close(ctx)
}

// ReplaceAll swaps in a freshly ingested snapshot of all three
// collections and invalidates every namespace.
func (s *Store) ReplaceAll(ctx context.Context, users []*User, posts []*Post, comments []*Comment) error {
	if err := s.driver.ReplaceUsers(ctx, users); err != nil {
		return errors.Wrap(err, "failed to replace users")
	}
	if err := s.driver.ReplacePosts(ctx, posts); err != nil {
		return errors.Wrap(err, "failed to replace posts")
	}
	if err := s.driver.ReplaceComments(ctx, comments); err != nil {
		return errors.Wrap(err, "failed to replace comments")
	}
	s.userCache.InvalidatePrefix(ctx, cache.NamespaceUsers)
	s.postCache.InvalidatePrefix(ctx, cache.NamespacePosts)
	s.commentCache.InvalidatePrefix(ctx, cache.NamespaceComments)
	return nil
}
