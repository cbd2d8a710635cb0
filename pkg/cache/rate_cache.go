package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
)

const publishedRateKeyPrefix = "rates:published:latest:"

// publishedRateTTL bounds staleness if an invalidation is ever missed.
const publishedRateTTL = 10 * time.Minute

// RateCache is a read-through cache for the published-latest rate, the hottest
// read path in the app (dashboards poll it). A nil *RateCache or a RateCache
// over a nil client is a no-op, so callers never branch on cache availability.
type RateCache struct {
	client *redis.Client
}

// NewRateCache wraps a redis client; client may be nil.
func NewRateCache(client *redis.Client) *RateCache {
	return &RateCache{client: client}
}

// GetPublishedLatest returns the cached published rate for a product, or
// (nil, false) on miss, disabled cache, or any redis/decode error.
func (c *RateCache) GetPublishedLatest(ctx context.Context, product string) (*domain.Rate, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, publishedRateKeyPrefix+product).Bytes()
	if err != nil {
		return nil, false
	}
	var rate domain.Rate
	if err := json.Unmarshal(raw, &rate); err != nil {
		return nil, false
	}
	return &rate, true
}

// SetPublishedLatest stores the published rate for a product. Errors are
// dropped: the cache is best-effort over an authoritative store.
func (c *RateCache) SetPublishedLatest(ctx context.Context, rate *domain.Rate) {
	if c == nil || c.client == nil || rate == nil {
		return
	}
	raw, err := json.Marshal(rate)
	if err != nil {
		return
	}
	c.client.Set(ctx, publishedRateKeyPrefix+rate.Product, raw, publishedRateTTL)
}

// InvalidatePublishedLatest drops the cached entry for a product. Called on
// verify and edit so readers never see a stale published value.
func (c *RateCache) InvalidatePublishedLatest(ctx context.Context, product string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, publishedRateKeyPrefix+product)
}
