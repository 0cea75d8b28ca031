// Package cache holds explicit caches for geocoding results. A cache is an
// ordinary value owned by whoever builds it; nothing here is process global.
package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"synastry-service/datasource"
	"synastry-service/models"
)

// Recorder is notified of every cache lookup. metrics.Collector implements it.
type Recorder interface {
	CacheLookup(cache string, hit bool)
}

// GeocodeCache maps canonical place names to resolved locations. It never
// evicts: entries live as long as the cache does, so callers that need a
// bound should wrap it or drop the whole cache.
type GeocodeCache struct {
	mutex   sync.RWMutex
	entries map[string]models.Location
	hits    int
	misses  int
}

// NewGeocodeCache creates an empty cache
func NewGeocodeCache() *GeocodeCache {
	return &GeocodeCache{entries: make(map[string]models.Location)}
}

// Get looks place up by its canonical form.
func (c *GeocodeCache) Get(place string) (models.Location, bool) {
	key := datasource.CanonicalPlace(place)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	loc, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return loc, ok
}

// Put stores loc under the canonical form of place. Empty keys are ignored.
func (c *GeocodeCache) Put(place string, loc models.Location) {
	key := datasource.CanonicalPlace(place)
	if key == "" {
		return
	}
	c.mutex.Lock()
	c.entries[key] = loc
	c.mutex.Unlock()
}

// Len returns the number of cached places
func (c *GeocodeCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

// Stats returns statistics about cache hits and misses
func (c *GeocodeCache) Stats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.hits, c.misses
}

// CachedGeocoder answers from a GeocodeCache and only asks the wrapped
// geocoder on a miss. Only successful lookups are stored, so an unresolved
// place or a provider outage is retried next time.
type CachedGeocoder struct {
	geocoder datasource.Geocoder
	cache    *GeocodeCache
	logger   *zap.Logger
	recorder Recorder
}

// NewCachedGeocoder creates a new cached wrapper around a geocoder. A nil
// cache gets a fresh one.
func NewCachedGeocoder(geocoder datasource.Geocoder, cache *GeocodeCache, logger *zap.Logger) *CachedGeocoder {
	if cache == nil {
		cache = NewGeocodeCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGeocoder{geocoder: geocoder, cache: cache, logger: logger}
}

// WithRecorder sets the lookup recorder and returns c.
func (c *CachedGeocoder) WithRecorder(r Recorder) *CachedGeocoder {
	c.recorder = r
	return c
}

// Name returns the name of the underlying geocoder with [Cached] suffix
func (c *CachedGeocoder) Name() string {
	return c.geocoder.Name() + " [Cached]"
}

// Cache returns the backing cache.
func (c *CachedGeocoder) Cache() *GeocodeCache {
	return c.cache
}

// Geocode resolves place, using the cache when available
func (c *CachedGeocoder) Geocode(ctx context.Context, place string) (models.Location, error) {
	if loc, ok := c.cache.Get(place); ok {
		c.record(true)
		c.logger.Debug("geocode cache hit", zap.String("place", place), zap.String("provider", loc.Provider))
		loc.Query = place
		return loc, nil
	}
	c.record(false)
	c.logger.Debug("geocode cache miss", zap.String("place", place), zap.String("provider", c.geocoder.Name()))

	loc, err := c.geocoder.Geocode(ctx, place)
	if err != nil {
		return models.Location{}, err
	}
	c.cache.Put(place, loc)
	return loc, nil
}

func (c *CachedGeocoder) record(hit bool) {
	if c.recorder != nil {
		c.recorder.CacheLookup("geocode", hit)
	}
}

var _ datasource.Geocoder = (*CachedGeocoder)(nil)
