package store

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps values in process memory. Nothing survives a restart.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates an empty store whose values never expire
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	if x, found := s.cache.Get(key); found {
		return x.(string), nil
	}
	return "", ErrNotFound
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.cache.Set(key, value, cache.DefaultExpiration)
	return nil
}

// Cached serves reads from memory for ttl before going back to the wrapped store.
// Writes go to the wrapped store first and refresh the cached copy.
type Cached struct {
	backend Store
	cache   *cache.Cache
}

// NewCached wraps backend with a read cache
func NewCached(backend Store, ttl time.Duration) *Cached {
	return &Cached{
		backend: backend,
		cache:   cache.New(ttl, 2*ttl),
	}
}

func (c *Cached) Get(ctx context.Context, key string) (string, error) {
	if x, found := c.cache.Get(key); found {
		return x.(string), nil
	}

	value, err := c.backend.Get(ctx, key)
	if err != nil {
		return "", err
	}
	c.cache.Set(key, value, cache.DefaultExpiration)
	return value, nil
}

func (c *Cached) Set(ctx context.Context, key, value string) error {
	if err := c.backend.Set(ctx, key, value); err != nil {
		c.cache.Delete(key)
		return err
	}
	c.cache.Set(key, value, cache.DefaultExpiration)
	return nil
}
