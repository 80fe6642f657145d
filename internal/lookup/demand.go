package lookup

import (
	"context"
	"time"

	"github.com/quotewise/quotewise/internal/cache"
)

// DefaultDemandTTL bounds how stale a memoized demand signal may be. Demand
// moves faster than cost-of-living indices, so the window is short.
const DefaultDemandTTL = 1 * time.Minute

// CachedDemandSource memoizes demand lookups per zip so a burst of quotes
// for the same area reuses one upstream call.
type CachedDemandSource struct {
	source DemandSource
	cache  cache.Cache
	ttl    time.Duration
}

// NewCachedDemandSource wraps a demand source with a per-zip cache. A
// non-positive ttl falls back to DefaultDemandTTL.
func NewCachedDemandSource(source DemandSource, c cache.Cache, ttl time.Duration) *CachedDemandSource {
	if ttl <= 0 {
		ttl = DefaultDemandTTL
	}
	return &CachedDemandSource{
		source: source,
		cache:  c,
		ttl:    ttl,
	}
}

// CurrentDemand returns the cached signal for the zip when fresh, otherwise
// fetches from the wrapped source. Errors are never cached.
func (s *CachedDemandSource) CurrentDemand(ctx context.Context, zipCode string, at time.Time) (*DemandSignal, error) {
	key := cache.GenerateKey(cache.PrefixDemand, zipCode)
	if cached, ok := s.cache.Get(ctx, key); ok {
		if signal, ok := cached.(DemandSignal); ok {
			copied := signal
			return &copied, nil
		}
	}

	signal, err := s.source.CurrentDemand(ctx, zipCode, at)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, *signal, s.ttl)
	return signal, nil
}
