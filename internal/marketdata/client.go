package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/trogers1052/etf-analytics/internal/models"
)

// Fetcher retrieves OHLCV history for a ticker over a named period
// (e.g. "1y", "5y", "max").
type Fetcher interface {
	FetchOHLCV(ctx context.Context, ticker, period string) (models.PriceSeries, error)
}

// FetchBenchmarks loads a series per benchmark ticker, tolerating per-ticker
// failures: tickers that cannot be fetched are logged and omitted from the
// map rather than failing the whole batch.
func FetchBenchmarks(ctx context.Context, f Fetcher, tickers []string, period string) map[string]models.PriceSeries {
	out := make(map[string]models.PriceSeries, len(tickers))
	for _, ticker := range tickers {
		s, err := f.FetchOHLCV(ctx, ticker, period)
		if err != nil {
			log.Warn().Err(err).Str("symbol", ticker).Msg("benchmark fetch failed, omitting")
			continue
		}
		out[ticker] = s
	}
	return out
}

// YahooClient implements Fetcher using the Yahoo Finance v8 chart API
type YahooClient struct {
	BaseURL    string
	Client     *http.Client
	MaxRetries int
}

// NewYahooClient creates a Yahoo Finance client with a request timeout and
// bounded retry for transient failures.
func NewYahooClient(timeout time.Duration) *YahooClient {
	return &YahooClient{
		BaseURL:    "https://query1.finance.yahoo.com",
		Client:     &http.Client{Timeout: timeout},
		MaxRetries: 3,
	}
}

// yahooChart is the response structure from the Yahoo Finance chart API.
// Pointer slices absorb the nulls Yahoo emits for market holidays.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchOHLCV retrieves daily bars for the ticker over the given range
func (c *YahooClient) FetchOHLCV(ctx context.Context, ticker, period string) (models.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		c.BaseURL, url.PathEscape(ticker), url.QueryEscape(period))

	body, err := c.getWithRetry(ctx, u)
	if err != nil {
		return models.PriceSeries{}, fmt.Errorf("failed to fetch %s: %w", ticker, err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return models.PriceSeries{}, fmt.Errorf("failed to decode chart for %s: %w", ticker, err)
	}
	if chart.Chart.Error != nil {
		return models.PriceSeries{}, fmt.Errorf("chart api error for %s: %s", ticker, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return models.PriceSeries{}, fmt.Errorf("no data returned for %s", ticker)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	series := models.PriceSeries{Symbol: ticker}

	for i, ts := range result.Timestamp {
		if quote.Close[i] == nil {
			continue // holiday / null bar
		}
		series.Bars = append(series.Bars, models.PriceBar{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   decimalAt(quote.Open, i),
			High:   decimalAt(quote.High, i),
			Low:    decimalAt(quote.Low, i),
			Close:  decimalAt(quote.Close, i),
			Volume: volumeAt(quote.Volume, i),
		})
	}
	if len(series.Bars) == 0 {
		return models.PriceSeries{}, fmt.Errorf("no usable bars for %s", ticker)
	}

	sort.Slice(series.Bars, func(i, j int) bool { return series.Bars[i].Date.Before(series.Bars[j].Date) })
	return series, nil
}

func (c *YahooClient) getWithRetry(ctx context.Context, u string) ([]byte, error) {
	backoff := 500 * time.Millisecond
	var lastErr error

	for attempt := 0; attempt < c.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Debug().Str("url", u).Int("attempt", attempt+1).Msg("retrying chart request")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}

		body, retryable, err := c.get(ctx, u)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", c.MaxRetries, lastErr)
}

func (c *YahooClient) get(ctx context.Context, u string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, fmt.Errorf("status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, false, nil
}

func decimalAt(vals []*float64, i int) decimal.Decimal {
	if i >= len(vals) || vals[i] == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*vals[i])
}

func volumeAt(vals []*float64, i int) int64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return int64(*vals[i])
}
