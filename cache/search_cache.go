package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"synastry-service/datasource"
	"synastry-service/models"
)

// CachedSearcher wraps a Searcher and keeps suggestions for a while, so an
// autocomplete box re-asking the same prefix does not spend provider quota.
type CachedSearcher struct {
	searcher      datasource.Searcher
	cache         map[string]searchCacheEntry // key is canonical query:limit
	mutex         sync.RWMutex
	cacheDuration time.Duration
	hits          int
	misses        int
	logger        *zap.Logger
	recorder      Recorder
	now           func() time.Time
}

type searchCacheEntry struct {
	Data      []models.Location
	Timestamp time.Time
}

// NewCachedSearcher creates a new cached wrapper around a searcher
func NewCachedSearcher(searcher datasource.Searcher, cacheDuration time.Duration, logger *zap.Logger) *CachedSearcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSearcher{
		searcher:      searcher,
		cache:         make(map[string]searchCacheEntry),
		cacheDuration: cacheDuration,
		logger:        logger,
		now:           time.Now,
	}
}

// WithRecorder sets the lookup recorder and returns c.
func (c *CachedSearcher) WithRecorder(r Recorder) *CachedSearcher {
	c.recorder = r
	return c
}

// Name returns the name of the underlying searcher with [Cached] suffix
func (c *CachedSearcher) Name() string {
	return c.searcher.Name() + " [Cached]"
}

// Search returns suggestions, using the cache when available. Empty results
// are cached too; errors are not.
func (c *CachedSearcher) Search(ctx context.Context, query string, limit int) ([]models.Location, error) {
	key := fmt.Sprintf("%s:%d", datasource.CanonicalPlace(query), limit)

	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	if found && c.now().Sub(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.hits++
		c.mutex.Unlock()
		c.record(true)
		c.logger.Debug("search cache hit", zap.String("query", query), zap.Int("limit", limit))
		return clone(entry.Data), nil
	}

	c.mutex.Lock()
	c.misses++
	c.mutex.Unlock()
	c.record(false)

	locs, err := c.searcher.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.cache[key] = searchCacheEntry{
		Data:      clone(locs),
		Timestamp: c.now(),
	}
	c.mutex.Unlock()

	return locs, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedSearcher) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.hits, c.misses
}

func (c *CachedSearcher) record(hit bool) {
	if c.recorder != nil {
		c.recorder.CacheLookup("search", hit)
	}
}

var _ datasource.Searcher = (*CachedSearcher)(nil)

func clone(locs []models.Location) []models.Location {
	out := make([]models.Location, len(locs))
	copy(out, locs)
	return out
}
