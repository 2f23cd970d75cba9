package trackstats

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/autorev/laptime-engine/internal/metrics"
	"github.com/autorev/laptime-engine/internal/models"
)

// DefaultTTL is how long a track stats summary stays fresh. Lap time data
// changes in infrequent ingestion batches, so coarse staleness is fine.
const DefaultTTL = 5 * time.Minute

type cacheEntry struct {
	summary   *models.TrackStatsSummary
	expiresAt time.Time
}

// Cache is an in-process TTL cache for track stats summaries, keyed by
// track slug. Expiry is tracked per entry against an injectable clock so
// the TTL is testable. A race between two concurrent misses for the same
// track causes a harmless duplicate fetch, never corruption.
type Cache struct {
	cache *cache.Cache
	ttl   time.Duration
	now   func() time.Time

	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// CacheOption customizes a Cache.
type CacheOption func(*Cache)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a track stats cache with the given TTL.
func NewCache(ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a cached summary. Entries past their expiry are treated as
// misses even if go-cache's own janitor has not collected them yet.
func (c *Cache) Get(slug string) (*models.TrackStatsSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if raw, found := c.cache.Get(slug); found {
		if entry, ok := raw.(*cacheEntry); ok && c.now().Before(entry.expiresAt) {
			c.hitCount++
			c.updateMetrics()
			return entry.summary, true
		}
		c.cache.Delete(slug)
	}

	c.missCount++
	c.updateMetrics()
	return nil, false
}

// Set stores a summary under the track slug.
func (c *Cache) Set(slug string, summary *models.TrackStatsSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Set(slug, &cacheEntry{
		summary:   summary,
		expiresAt: c.now().Add(c.ttl),
	}, c.ttl)
	metrics.UpdateCacheSize(float64(c.cache.ItemCount()))
}

// Invalidate removes one track's entry.
func (c *Cache) Invalidate(slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Delete(slug)
}

// Flush clears the cache and resets hit counters.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.hitCount = 0
	c.missCount = 0
}

// Stats returns cache hit statistics.
func (c *Cache) Stats() (hits, misses uint64, ratio float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hits = c.hitCount
	misses = c.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache.
func (c *Cache) ItemCount() int {
	return c.cache.ItemCount()
}

func (c *Cache) updateMetrics() {
	total := c.hitCount + c.missCount
	if total > 0 {
		metrics.UpdateCacheHitRatio(float64(c.hitCount) / float64(total))
	}
}
