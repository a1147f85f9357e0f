package resolve

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache maps normalized identifiers to their Classification for one run.
// Entries are written once and never replaced.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Classification
	group   singleflight.Group
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Classification)}
}

// Get returns the cached classification for key.
func (c *Cache) Get(key string) (Classification, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cls, ok := c.entries[key]
	return cls, ok
}

// Seed loads classifications from a prior run. Keys already present keep their value.
// It returns the number of entries added.
func (c *Cache) Seed(entries []Classification) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for _, cls := range entries {
		if cls.Identifier == "" {
			continue
		}
		if _, exists := c.entries[cls.Identifier]; exists {
			continue
		}
		cls.Source = SourceSeed
		c.entries[cls.Identifier] = cls
		added++
	}
	return added
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot returns a copy of every cached entry.
func (c *Cache) Snapshot() map[string]Classification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Classification, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

// commit stores cls unless key already holds a value, and returns the stored value.
func (c *Cache) commit(key string, cls Classification) Classification {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = cls
	return cls
}

// GetOrResolve returns the cached value for key, or runs fn exactly once across
// concurrent callers and commits its result. hit reports whether the value came
// from the cache. Results returned with an error are not committed.
func (c *Cache) GetOrResolve(ctx context.Context, key string, fn func() (Classification, error)) (cls Classification, hit bool, err error) {
	if cls, ok := c.Get(key); ok {
		return cls, true, nil
	}

	for {
		v, err, _ := c.group.Do(key, func() (any, error) {
			// Double-check: another flight may have committed while we waited.
			if cls, ok := c.Get(key); ok {
				return cls, nil
			}
			cls, err := fn()
			if err != nil {
				return Classification{}, err
			}
			return c.commit(key, cls), nil
		})
		if err != nil {
			// The leader was cancelled but this caller was not: fly again.
			if isContextErr(err) && ctx.Err() == nil {
				continue
			}
			return Classification{}, false, err
		}
		return v.(Classification), false, nil
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
