package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/trogers1052/etf-analytics/internal/models"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}
	opt, err := redis.ParseURL(connStr)
	if err != nil {
		t.Fatalf("failed to parse redis connection string: %v", err)
	}
	return redis.NewClient(opt)
}

func TestCachedFetcher(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rdb := setupTestRedis(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series := models.PriceSeries{
		Symbol: "BGRN",
		Bars: []models.PriceBar{
			{Date: base, Open: decimal.NewFromInt(100), High: decimal.NewFromInt(103), Low: decimal.NewFromInt(99), Close: decimal.NewFromInt(102), Volume: 1000},
			{Date: base.AddDate(0, 0, 1), Open: decimal.NewFromInt(102), High: decimal.NewFromInt(104), Low: decimal.NewFromInt(100), Close: decimal.NewFromInt(101), Volume: 2000},
		},
	}

	t.Run("second fetch is served from cache", func(t *testing.T) {
		stub := newStubFetcher(map[string]models.PriceSeries{"BGRN": series})
		cached := NewCachedFetcher(stub, rdb, time.Minute)

		first, err := cached.FetchOHLCV(ctx, "BGRN", "1y")
		require.NoError(t, err)
		assert.Equal(t, 1, stub.calls["BGRN"])

		second, err := cached.FetchOHLCV(ctx, "BGRN", "1y")
		require.NoError(t, err)
		assert.Equal(t, 1, stub.calls["BGRN"], "second fetch should not hit the upstream")
		assert.Equal(t, first.Len(), second.Len())
		assert.True(t, second.Bars[0].Close.Equal(first.Bars[0].Close))
	})

	t.Run("cache keys include the period", func(t *testing.T) {
		stub := newStubFetcher(map[string]models.PriceSeries{"BGRN": series})
		cached := NewCachedFetcher(stub, rdb, time.Minute)

		_, err := cached.FetchOHLCV(ctx, "BGRN", "6mo")
		require.NoError(t, err)
		_, err = cached.FetchOHLCV(ctx, "BGRN", "2y")
		require.NoError(t, err)
		assert.Equal(t, 2, stub.calls["BGRN"])
	})

	t.Run("upstream errors are not cached", func(t *testing.T) {
		stub := newStubFetcher(nil)
		cached := NewCachedFetcher(stub, rdb, time.Minute)

		_, err := cached.FetchOHLCV(ctx, "MISSING", "1y")
		require.Error(t, err)
		_, err = cached.FetchOHLCV(ctx, "MISSING", "1y")
		require.Error(t, err)
		assert.Equal(t, 2, stub.calls["MISSING"])
	})

	t.Run("entries expire with the configured ttl", func(t *testing.T) {
		stub := newStubFetcher(map[string]models.PriceSeries{"BGRN": series})
		cached := NewCachedFetcher(stub, rdb, time.Second)

		_, err := cached.FetchOHLCV(ctx, "BGRN", "expiring")
		require.NoError(t, err)

		time.Sleep(1500 * time.Millisecond)

		_, err = cached.FetchOHLCV(ctx, "BGRN", "expiring")
		require.NoError(t, err)
		assert.Equal(t, 2, stub.calls["BGRN"])
	})
}
