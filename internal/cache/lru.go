// Package cache provides caching utilities for the MCP server.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/keywordcsv-mcp/pkg/types"
)

// ConversionCache provides thread-safe LRU caching for completed conversions.
type ConversionCache struct {
	cache *lru.Cache[string, *types.Conversion]
}

// NewConversionCache creates a new LRU cache with the specified maximum number of items.
func NewConversionCache(maxItems int) (*ConversionCache, error) {
	c, err := lru.New[string, *types.Conversion](maxItems)
	if err != nil {
		return nil, err
	}
	return &ConversionCache{cache: c}, nil
}

// Get retrieves a conversion by its ID and marks it as recently used.
// Returns the conversion and true if found, nil and false otherwise.
func (c *ConversionCache) Get(id string) (*types.Conversion, bool) {
	return c.cache.Get(id)
}

// Peek retrieves a conversion without updating its recency.
func (c *ConversionCache) Peek(id string) (*types.Conversion, bool) {
	return c.cache.Peek(id)
}

// Put adds or updates a conversion in the cache.
func (c *ConversionCache) Put(conv *types.Conversion) {
	c.cache.Add(conv.ID, conv)
}

// Keys returns cached conversion IDs from oldest to newest.
func (c *ConversionCache) Keys() []string {
	return c.cache.Keys()
}

// Len returns the current number of items in the cache.
func (c *ConversionCache) Len() int {
	return c.cache.Len()
}
