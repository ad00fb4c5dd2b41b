package pattern

import (
	"sync"

	"github.com/gomlx/dynshape/types"
)

type resolution struct {
	pattern types.Pattern
	err     error
}

// CachedRegistry memoizes the resolutions of a Registry, keyed by Summary.Key.
//
// It is safe for concurrent use. Entries are never invalidated: the underlying registry is immutable.
type CachedRegistry struct {
	registry *Registry

	mu    sync.RWMutex
	cache map[string]resolution
}

// Cached returns a memoizing wrapper around the registry.
func (r *Registry) Cached() *CachedRegistry {
	return &CachedRegistry{registry: r, cache: make(map[string]resolution)}
}

// Resolve implements Resolver. Failed resolutions are cached as well.
func (c *CachedRegistry) Resolve(s Summary) (types.Pattern, error) {
	key := s.Key()
	c.mu.RLock()
	res, found := c.cache[key]
	c.mu.RUnlock()
	if found {
		return res.pattern, res.err
	}
	res.pattern, res.err = c.registry.Resolve(s)
	c.mu.Lock()
	c.cache[key] = res
	c.mu.Unlock()
	return res.pattern, res.err
}

// Len returns the number of cached summaries.
func (c *CachedRegistry) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
