package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/trogers1052/etf-analytics/internal/models"
)

// CachedFetcher memoizes another Fetcher in redis, keyed by (ticker, period)
// with an explicit TTL. Cache failures degrade to a direct fetch; they are
// logged but never surfaced to callers.
type CachedFetcher struct {
	inner Fetcher
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachedFetcher wraps a Fetcher with a redis-backed cache
func NewCachedFetcher(inner Fetcher, rdb *redis.Client, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{inner: inner, rdb: rdb, ttl: ttl}
}

func cacheKey(ticker, period string) string {
	return fmt.Sprintf("ohlcv:%s:%s", ticker, period)
}

// FetchOHLCV returns a cached series when present, otherwise fetches from
// the wrapped client and stores the result.
func (c *CachedFetcher) FetchOHLCV(ctx context.Context, ticker, period string) (models.PriceSeries, error) {
	key := cacheKey(ticker, period)

	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var series models.PriceSeries
		jsonErr := json.Unmarshal(data, &series)
		if jsonErr == nil {
			log.Debug().Str("symbol", ticker).Str("period", period).Msg("cache hit")
			return series, nil
		}
		log.Warn().Err(jsonErr).Str("key", key).Msg("failed to decode cached series, refetching")
	} else if err != redis.Nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, fetching directly")
	}

	series, err := c.inner.FetchOHLCV(ctx, ticker, period)
	if err != nil {
		return models.PriceSeries{}, err
	}

	if data, err := json.Marshal(series); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return series, nil
}
