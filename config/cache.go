package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// SeriesCache holds computed aggregation series keyed by the canonical
	// selection query plus the series name. Correctness never depends on a
	// hit: every miss is a pure re-derivation from the row sets.
	SeriesCache *cache.Cache
)

const (
	seriesCleanupInterval = 2 * time.Hour
)

func InitCache() {
	ttl := time.Duration(GetCacheTTLMinutes()) * time.Minute
	SeriesCache = cache.New(ttl, seriesCleanupInterval)
}

func ClearAllCaches() {
	if SeriesCache != nil {
		SeriesCache.Flush()
	}
}

func GetCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
