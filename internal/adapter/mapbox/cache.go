package mapbox

import (
	"context"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics counts geocode cache lookups by result (hit/miss). May be nil.
type CacheMetrics = *prometheus.CounterVec

// cachedGeocoder wraps a geocoder with an in-memory LRU cache. Place names
// don't move, so entries never expire; the LRU bound caps memory.
type cachedGeocoder struct {
	inner   geocoder
	cache   *lruCache
	metrics CacheMetrics
}

func newCachedGeocoder(inner geocoder, maxEntries int, metrics CacheMetrics) *cachedGeocoder {
	return &cachedGeocoder{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *cachedGeocoder) forwardGeocode(ctx context.Context, name string) (geocodeResult, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if result, ok := c.cache.get(key); ok {
		c.count("hit")
		return result, nil
	}
	c.count("miss")

	result, err := c.inner.forwardGeocode(ctx, name)
	if err != nil {
		return result, err
	}
	// Only cache found results so transient "not found" responses can be retried.
	if result.Found {
		c.cache.put(key, result)
	}
	return result, nil
}

func (c *cachedGeocoder) count(result string) {
	if c.metrics != nil {
		c.metrics.WithLabelValues(result).Inc()
	}
}

// lruCache is a simple thread-safe LRU cache for geocode results.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value geocodeResult
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (geocodeResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return geocodeResult{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value geocodeResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
