// Package productcache memoizes single-product reads.
//
// The cache is bounded (LRU) and entries expire after a TTL, so a
// process cannot grow without limit as the catalog grows and a stale
// entry converges even when invalidation is missed (for example by a
// write on another instance). It is an injected dependency with an
// explicit lifecycle rather than ambient package state, so tests can
// substitute their own instance.
package productcache

import (
	"time"

	"github.com/dalemusser/storefront/internal/domain/models"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Defaults used when configuration leaves size/TTL unset.
const (
	DefaultSize = 512
	DefaultTTL  = 5 * time.Minute
)

// Cache is a bounded TTL cache of product documents keyed by hex id.
type Cache struct {
	lru *expirable.LRU[string, models.Product]
}

// New builds a cache with the given capacity and TTL. Non-positive
// values fall back to the defaults.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{lru: expirable.NewLRU[string, models.Product](size, nil, ttl)}
}

// Get returns the cached product for id, if present and unexpired.
func (c *Cache) Get(id string) (models.Product, bool) {
	return c.lru.Get(id)
}

// Put stores a product snapshot under its hex id.
func (c *Cache) Put(id string, p models.Product) {
	c.lru.Add(id, p)
}

// Invalidate drops the entry for id. Called on product update/delete.
func (c *Cache) Invalidate(id string) {
	c.lru.Remove(id)
}

// Len reports the number of live entries (for tests and diagnostics).
func (c *Cache) Len() int {
	return c.lru.Len()
}
