package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fuelroute/internal/domain"
	"fuelroute/internal/geo"
)

// DistanceCacheTTL bounds how long a computed distance stays valid.
const DistanceCacheTTL = 24 * time.Hour

const distanceCachePrefix = "cache:distance:"

// DistanceCache memoizes great-circle distances in Redis so that
// repeated lookups for the same coordinate pair skip the trigonometry.
// The key is the ordered pair: (a,b) and (b,a) may occupy separate
// entries holding the same value.
//
// Lookups never fail: a Redis error is treated as a miss and the
// distance is recomputed. Concurrent requests may write the same entry
// redundantly; the overwrite is idempotent.
type DistanceCache struct {
	client *redis.Client
}

// NewDistanceCache creates a new DistanceCache.
func NewDistanceCache(client *redis.Client) *DistanceCache {
	return &DistanceCache{client: client}
}

// Distance returns the great-circle miles between a and b, consulting
// the cache first.
func (s *DistanceCache) Distance(ctx context.Context, a, b domain.Coordinate) float64 {
	key := distanceKey(a, b)

	if miles, err := s.client.Get(ctx, key).Float64(); err == nil {
		return miles
	}

	miles := geo.Miles(a, b)
	_ = s.client.Set(ctx, key, miles, DistanceCacheTTL).Err()
	return miles
}

func distanceKey(a, b domain.Coordinate) string {
	return fmt.Sprintf("%s%.6f,%.6f:%.6f,%.6f", distanceCachePrefix, a.Lat, a.Lon, b.Lat, b.Lon)
}
