package cache

import (
	"fmt"
	"slices"
	"time"

	"ratelock/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoLockListCache keeps each user's lock list for a short TTL.
// Entries are invalidated on every write by that user.
type RistrettoLockListCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewLockListCache(maxItems int64, ttl time.Duration) (*RistrettoLockListCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create lock list cache failed: %w", err)
	}
	return &RistrettoLockListCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoLockListCache) Get(userID string) ([]domain.RateLock, bool) {
	if v, ok := c.cache.Get(userID); ok {
		locks, ok := v.([]domain.RateLock)
		return slices.Clone(locks), ok
	}
	return nil, false
}

func (c *RistrettoLockListCache) Set(userID string, locks []domain.RateLock) {
	c.cache.SetWithTTL(userID, slices.Clone(locks), 1, c.ttl)
	// make the entry visible to the next Get
	c.cache.Wait()
}

func (c *RistrettoLockListCache) Invalidate(userID string) {
	c.cache.Del(userID)
}

func (c *RistrettoLockListCache) Close() { c.cache.Close() }
