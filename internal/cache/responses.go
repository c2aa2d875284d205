// Package cache keeps recently fetched API response bodies so that repeated
// searches and tab switches within the TTL do not refetch full collections.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// ResponseCache is a size- and TTL-bounded cache of GET response bodies
// keyed by request path. A nil *ResponseCache is a valid, always-missing
// cache.
type ResponseCache struct {
	entries *lru.LRU[string, []byte]
	ttl     time.Duration
}

// NewResponseCache returns nil when ttl is not positive, which disables
// caching.
func NewResponseCache(maxEntries int, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		return nil
	}
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &ResponseCache{
		entries: lru.NewLRU[string, []byte](maxEntries, nil, ttl),
		ttl:     ttl,
	}
}

func (c *ResponseCache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	return c.entries.Get(key)
}

func (c *ResponseCache) Add(key string, body []byte) {
	if c == nil {
		return
	}
	c.entries.Add(key, body)
}

// Purge drops every entry, forcing the next lookups to refetch.
func (c *ResponseCache) Purge() {
	if c == nil {
		return
	}
	c.entries.Purge()
}

func (c *ResponseCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

func (c *ResponseCache) TTL() time.Duration {
	if c == nil {
		return 0
	}
	return c.ttl
}
