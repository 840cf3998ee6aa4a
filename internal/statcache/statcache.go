// Package statcache memoizes path-existence probes with a TTL so the list
// view can badge missing targets without hitting the filesystem every frame.
package statcache

import (
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/launchpad/internal/log"
)

const (
	// DefaultTTL keeps a probe result long enough to cover a render burst
	// but short enough to notice a file reappearing.
	DefaultTTL             = 5 * time.Second
	defaultCleanupInterval = time.Minute
)

// Cache memoizes existence checks per path.
type Cache struct {
	cache *gocache.Cache
	stat  func(string) error
}

// New creates a cache with the given TTL.
func New(ttl time.Duration) *Cache {
	return &Cache{
		cache: gocache.New(ttl, defaultCleanupInterval),
		stat: func(path string) error {
			_, err := os.Stat(path)
			return err
		},
	}
}

// Exists reports whether the path exists, answering from the cache when a
// fresh probe is available.
func (c *Cache) Exists(path string) bool {
	if path == "" {
		return false
	}
	if cached, found := c.cache.Get(path); found {
		if exists, ok := cached.(bool); ok {
			return exists
		}
		log.Error(log.CatCache, "wrong type in stat cache", "path", path)
	}

	exists := c.stat(path) == nil
	c.cache.Set(path, exists, gocache.DefaultExpiration)
	return exists
}

// Invalidate drops any cached probe for the path, forcing a re-stat on the
// next lookup. Called after edits that change an entry's target.
func (c *Cache) Invalidate(path string) {
	c.cache.Delete(path)
}

// Flush drops every cached probe. Called after a registry reload.
func (c *Cache) Flush() {
	c.cache.Flush()
}
