package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchmarksFor(t *testing.T) {
	t.Run("curated tickers get their benchmark list", func(t *testing.T) {
		assert.Equal(t, []string{"AGG", "LQD", "TLT", "HYG"}, BenchmarksFor("BGRN"))
		assert.Equal(t, []string{"SPY", "QCLN", "VGT", "XLI"}, BenchmarksFor("ICLN"))
		assert.Equal(t, []string{"SPY", "AGG", "GLD", "USO"}, BenchmarksFor("KRBN"))
	})

	t.Run("unknown tickers fall back to the broad-market pair", func(t *testing.T) {
		assert.Equal(t, []string{"SPY", "AGG"}, BenchmarksFor("VOO"))
	})

	t.Run("callers cannot mutate the table", func(t *testing.T) {
		b := BenchmarksFor("BGRN")
		b[0] = "XXX"
		assert.Equal(t, "AGG", BenchmarksFor("BGRN")[0])
	})
}

func TestInfo(t *testing.T) {
	info := Info("ICLN")
	assert.Equal(t, "iShares Global Clean Energy ETF", info.Name)
	assert.Equal(t, "Clean Energy Equity", info.Category)

	fallback := Info("QQQ")
	assert.Equal(t, "QQQ", fallback.Name)
	assert.Equal(t, "Unknown", fallback.Category)
}

func TestMarketEvents(t *testing.T) {
	events := MarketEvents()
	require.Len(t, events, 5)

	for _, ev := range events {
		_, err := time.Parse("2006-01-02", ev.Date)
		assert.NoError(t, err, "event %q has unparseable date %q", ev.Label, ev.Date)
		assert.NotEmpty(t, ev.Label)
	}
}

func TestBenchmarkName(t *testing.T) {
	assert.Equal(t, "S&P 500", BenchmarkName("SPY"))
	assert.Equal(t, "Market Index", BenchmarkName("ZZZ"))
}
