package staircase

import (
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// TilingCache memoizes Generate per level. Concurrent requests for a level that is not yet cached share one computation. Cached tilings must not be modified.
type TilingCache struct {
	group singleflight.Group

	mu      sync.RWMutex
	tilings map[int]Tiling
}

// NewTilingCache returns an empty cache.
func NewTilingCache() *TilingCache {
	return &TilingCache{
		tilings: map[int]Tiling{},
	}
}

// Get returns the tiling at the given level, generating it on first use. It panics for a negative level.
func (c *TilingCache) Get(level int) Tiling {
	if level < 0 {
		panic(fmt.Sprintf("level must be non-negative, got %d", level))
	}

	c.mu.RLock()
	t, ok := c.tilings[level]
	c.mu.RUnlock()
	if ok {
		return t
	}

	v, _, _ := c.group.Do(strconv.Itoa(level), func() (interface{}, error) {
		c.mu.RLock()
		t, ok := c.tilings[level]
		c.mu.RUnlock()
		if ok {
			return t, nil
		}

		t = Generate(level)
		c.mu.Lock()
		c.tilings[level] = t
		c.mu.Unlock()
		return t, nil
	})
	return v.(Tiling)
}

// Len returns the number of cached levels.
func (c *TilingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tilings)
}

// Reset removes all cached tilings.
func (c *TilingCache) Reset() {
	c.mu.Lock()
	c.tilings = map[int]Tiling{}
	c.mu.Unlock()
}
