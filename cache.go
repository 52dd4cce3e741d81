package i18nkeys

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// ProgramCache stores compiled selector programs keyed by expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache registers a program cache on the catalog. Selector
// backends reuse compiled programs across Select calls through it.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *catalogConfig) {
		cfg.cache = cache
	}
}

// LRUProgramCache is a bounded ProgramCache with least-recently-used
// eviction. Safe for concurrent use.
type LRUProgramCache struct {
	cache *lru.Cache[string, any]
}

// NewLRUProgramCache builds a cache holding at most size programs.
func NewLRUProgramCache(size int) (*LRUProgramCache, error) {
	cache, err := lru.New[string, any](size)
	if err != nil {
		return nil, err
	}
	return &LRUProgramCache{cache: cache}, nil
}

// Get implements ProgramCache.
func (c *LRUProgramCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

// Set implements ProgramCache.
func (c *LRUProgramCache) Set(key string, value any) {
	c.cache.Add(key, value)
}

// MapProgramCache is an unbounded ProgramCache backed by a plain map. Not
// safe for concurrent use; intended for single-goroutine tools and tests.
type MapProgramCache struct {
	programs map[string]any
}

// NewMapProgramCache builds an empty map-backed cache.
func NewMapProgramCache() *MapProgramCache {
	return &MapProgramCache{programs: map[string]any{}}
}

// Get implements ProgramCache.
func (c *MapProgramCache) Get(key string) (any, bool) {
	value, ok := c.programs[key]
	return value, ok
}

// Set implements ProgramCache.
func (c *MapProgramCache) Set(key string, value any) {
	c.programs[key] = value
}
