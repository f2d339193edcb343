package docsite

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested feature does not exist.
var ErrNotFound = sql.ErrNoRows

// featureLister is the part of FeatureStore the cache reads from.
type featureLister interface {
	ListFeatures() ([]Feature, error)
}

// FeatureCache is an in-memory cache of published features with TTL.
type FeatureCache struct {
	mu       sync.RWMutex
	features []Feature
	fetched  time.Time
	ttl      time.Duration
	store    featureLister
}

// NewFeatureCache creates a FeatureCache backed by the given store.
func NewFeatureCache(s featureLister, ttl time.Duration) *FeatureCache {
	return &FeatureCache{store: s, ttl: ttl}
}

func (c *FeatureCache) valid() bool {
	return c.features != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *FeatureCache) Invalidate() {
	c.mu.Lock()
	c.features = nil
	c.mu.Unlock()
}

// ListFeatures returns the published features, reloading from the store when
// the cached copy has expired. It tries a read lock first and only takes the
// write lock when a reload is needed.
func (c *FeatureCache) ListFeatures() ([]Feature, error) {
	c.mu.RLock()
	if c.valid() {
		features := c.features
		c.mu.RUnlock()
		return features, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.features, nil
	}
	features, err := c.store.ListFeatures()
	if err != nil {
		return nil, err
	}
	if features == nil {
		features = []Feature{}
	}
	c.features = features
	c.fetched = time.Now()
	return c.features, nil
}
