package embedding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sreevallabh04/gitalong/pkg/metrics"
)

// Cache memoizes one vector per user identity.
//
// Entries are pure functions of (identity, bio text), so two ranking calls
// racing on the same missing entry may both encode; last write wins and no
// correctness invariant depends on the order. Invalidate is called by the
// profile-management side whenever a user's bio changes.
type Cache struct {
	mu       sync.RWMutex
	vectors  map[string]Vector
	provider Provider
}

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// NewCache creates a cache backed by the given provider.
func NewCache(provider Provider, opts ...Option) *Cache {
	c := &Cache{
		vectors:  make(map[string]Vector),
		provider: provider,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VectorFor returns the cached vector for userID, encoding bio on a miss.
// Empty or too-short bios are substituted with the placeholder before
// encoding. Provider failures are returned without caching anything.
func (c *Cache) VectorFor(ctx context.Context, userID, bio string) (Vector, error) {
	c.mu.RLock()
	v, ok := c.vectors[userID]
	c.mu.RUnlock()
	if ok {
		metrics.RecordEmbeddingCacheHit()
		return v, nil
	}
	metrics.RecordEmbeddingCacheMiss()

	start := time.Now()
	v, err := c.provider.Encode(ctx, EffectiveBio(bio))
	metrics.RecordEmbeddingLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordEmbeddingError()
		return nil, fmt.Errorf("%w: user %s: %w", ErrEncodeFailed, userID, err)
	}

	c.mu.Lock()
	c.vectors[userID] = v
	c.mu.Unlock()
	return v, nil
}

// Invalidate drops the cached vector for userID. The next VectorFor call
// recomputes it.
func (c *Cache) Invalidate(userID string) {
	c.mu.Lock()
	delete(c.vectors, userID)
	c.mu.Unlock()
}

// Len returns the number of cached vectors.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}
