// Package cache keeps rendered digests in memory so unchanged files are not parsed again.
package cache

import (
	"errors"
	"fmt"

	"github.com/maypok86/otter"
)

// DefaultMaxEntries is the capacity used when none is configured.
const DefaultMaxEntries = 10000

// ErrInvalidCapacity indicates a non-positive cache capacity.
var ErrInvalidCapacity = errors.New("invalid cache capacity")

// Stats is a snapshot of cache effectiveness.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// Cache maps Key(lang, content) to the digest rendered for that content.
// It is safe for concurrent use. A nil *Cache is a valid, always-missing cache.
type Cache struct {
	cache otter.Cache[string, string]
}

// New creates a cache holding at most maxEntries digests.
func New(maxEntries int) (*Cache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("%w: max entries must be positive, got %d", ErrInvalidCapacity, maxEntries)
	}

	c, err := otter.MustBuilder[string, string](maxEntries).
		CollectStats().
		Cost(func(key string, value string) uint32 { return 1 }).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build cache: %w", err)
	}

	return &Cache{cache: c}, nil
}

// Get returns the digest stored for content.
func (c *Cache) Get(lang string, content []byte) (string, bool) {
	if c == nil {
		return "", false
	}
	return c.cache.Get(Key(lang, content))
}

// Put stores the digest rendered for content.
func (c *Cache) Put(lang string, content []byte, digest string) {
	if c == nil {
		return
	}
	c.cache.Set(Key(lang, content), digest)
}

// Stats returns hit and miss counts since creation and the number of stored digests.
func (c *Cache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	s := c.cache.Stats()
	return Stats{
		Hits:    s.Hits(),
		Misses:  s.Misses(),
		Entries: c.cache.Size(),
	}
}

// Close stops the cache's background work.
func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.cache.Close()
}
