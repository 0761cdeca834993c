package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trogers1052/etf-analytics/internal/models"
)

const chartBody = `{
	"chart": {
		"result": [{
			"timestamp": [1704153600, 1704240000, 1704326400, 1704412800],
			"indicators": {
				"quote": [{
					"open":   [100.0, 102.0, null, 101.0],
					"high":   [103.0, 104.0, null, 105.0],
					"low":    [99.0, 100.0, null, 100.5],
					"close":  [102.0, 101.0, null, 104.0],
					"volume": [1000, 2000, null, 1500]
				}]
			}
		}],
		"error": null
	}
}`

func newTestClient(srv *httptest.Server) *YahooClient {
	c := NewYahooClient(5 * time.Second)
	c.BaseURL = srv.URL
	return c
}

func TestYahooClientFetchOHLCV(t *testing.T) {
	t.Run("parses bars and skips null holidays", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/v8/finance/chart/BGRN")
			assert.Equal(t, "1y", r.URL.Query().Get("range"))
			fmt.Fprint(w, chartBody)
		}))
		defer srv.Close()

		series, err := newTestClient(srv).FetchOHLCV(context.Background(), "BGRN", "1y")
		require.NoError(t, err)

		assert.Equal(t, "BGRN", series.Symbol)
		require.Equal(t, 3, series.Len()) // null bar dropped
		first, _ := series.Bars[0].Close.Float64()
		assert.InDelta(t, 102.0, first, 1e-9)
		assert.Equal(t, int64(1000), series.Bars[0].Volume)

		// Dates strictly increasing.
		for i := 1; i < series.Len(); i++ {
			assert.True(t, series.Bars[i].Date.After(series.Bars[i-1].Date))
		}
	})

	t.Run("retries transient server errors", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			fmt.Fprint(w, chartBody)
		}))
		defer srv.Close()

		c := newTestClient(srv)
		series, err := c.FetchOHLCV(context.Background(), "BGRN", "max")
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, 3, series.Len())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := newTestClient(srv).FetchOHLCV(context.Background(), "NOPE", "max")
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("surfaces chart api errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
		}))
		defer srv.Close()

		_, err := newTestClient(srv).FetchOHLCV(context.Background(), "GONE", "max")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "delisted")
	})
}

// stubFetcher serves canned series and records call counts
type stubFetcher struct {
	series map[string]models.PriceSeries
	calls  map[string]int
}

func newStubFetcher(series map[string]models.PriceSeries) *stubFetcher {
	return &stubFetcher{series: series, calls: make(map[string]int)}
}

func (s *stubFetcher) FetchOHLCV(_ context.Context, ticker, period string) (models.PriceSeries, error) {
	s.calls[ticker]++
	if ps, ok := s.series[ticker]; ok {
		return ps, nil
	}
	return models.PriceSeries{}, fmt.Errorf("no data for %s over %s", ticker, period)
}

func TestFetchBenchmarks(t *testing.T) {
	t.Run("per-ticker failures are omitted, not fatal", func(t *testing.T) {
		stub := newStubFetcher(map[string]models.PriceSeries{
			"SPY": {Symbol: "SPY"},
			"AGG": {Symbol: "AGG"},
		})

		out := FetchBenchmarks(context.Background(), stub, []string{"SPY", "AGG", "MISSING"}, "max")
		assert.Len(t, out, 2)
		assert.Contains(t, out, "SPY")
		assert.Contains(t, out, "AGG")
		assert.NotContains(t, out, "MISSING")
	})
}
