package server

import (
	"github.com/coocood/freecache"
)

// Cache stores rendered responses keyed by request identity.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// previewTTL is how long rendered previews live, in seconds.
const previewTTL = 300

type freeCache struct {
	cache *freecache.Cache
	ttl   int
}

// NewCache returns a freecache-backed cache of sizeMB megabytes, or a cache
// that stores nothing when sizeMB is not positive.
func NewCache(sizeMB int) Cache {
	if sizeMB <= 0 {
		return noopCache{}
	}
	return &freeCache{
		cache: freecache.NewCache(sizeMB * 1024 * 1024),
		ttl:   previewTTL,
	}
}

func (c *freeCache) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *freeCache) Set(key string, value []byte) {
	// Entries larger than 1/1024 of the cache are rejected; they are simply recomputed
	_ = c.cache.Set([]byte(key), value, c.ttl)
}

type noopCache struct{}

func (noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (noopCache) Set(_ string, _ []byte)      {}

// metricsCache counts hits and misses of the wrapped cache.
type metricsCache struct {
	inner   Cache
	metrics Metrics
}

func newMetricsCache(inner Cache, metrics Metrics) Cache {
	return &metricsCache{inner: inner, metrics: metrics}
}

func (c *metricsCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return val, ok
}

func (c *metricsCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}
