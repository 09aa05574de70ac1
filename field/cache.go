package field

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultPlaceholderCacheSize is the number of contents a PlaceholderCache remembers by default.
const DefaultPlaceholderCacheSize = 1024

// PlaceholderCache remembers the placeholders of recently used contents. It is safe for concurrent use.
type PlaceholderCache struct {
	cache *lru.Cache
}

// NewPlaceholderCache returns a cache for the given number of contents.
func NewPlaceholderCache(size int) (*PlaceholderCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("cannot create placeholder cache: %w", err)
	}
	return &PlaceholderCache{cache: cache}, nil
}

// Placeholders returns the placeholder names of the given content.
func (c *PlaceholderCache) Placeholders(content string) []string {
	if cached, ok := c.cache.Get(content); ok {
		return copyNames(cached.([]string))
	}
	result := Placeholders(content)
	c.cache.Add(content, result)
	return copyNames(result)
}

// Len returns the number of cached contents.
func (c *PlaceholderCache) Len() int {
	return c.cache.Len()
}

func copyNames(names []string) []string {
	result := make([]string, len(names))
	copy(result, names)
	return result
}
