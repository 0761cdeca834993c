// Package catalog holds the static, hand-curated reference tables: macro
// market events, per-ETF benchmark lists, and descriptive ETF info. All
// lookups go through a single function with an explicit default.
package catalog

// MarketEvent pairs a calendar date (YYYY-MM-DD) with a named macro event.
// Dates stay as strings here; consumers parse them and skip entries that
// fail to parse.
type MarketEvent struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// ETFInfo describes an ETF for display
type ETFInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

var marketEvents = []MarketEvent{
	{Date: "2019-12-11", Label: "EU Green Deal"},
	{Date: "2020-03-12", Label: "COVID-19"},
	{Date: "2022-02-24", Label: "Russia Invades Ukraine"},
	{Date: "2022-06-15", Label: "Fed 75bp Hike"},
	{Date: "2023-03-10", Label: "SVB Collapse"},
}

var benchmarks = map[string][]string{
	"BGRN": {"AGG", "LQD", "TLT", "HYG"},
	"ICLN": {"SPY", "QCLN", "VGT", "XLI"},
	"KRBN": {"SPY", "AGG", "GLD", "USO"},
}

var defaultBenchmarks = []string{"SPY", "AGG"}

var etfInfo = map[string]ETFInfo{
	"BGRN": {
		Name:        "iShares Global Green Bond ETF",
		Description: "Tracks green bonds worldwide",
		Category:    "Green Bonds",
	},
	"ICLN": {
		Name:        "iShares Global Clean Energy ETF",
		Description: "Focuses on clean energy companies",
		Category:    "Clean Energy Equity",
	},
	"KRBN": {
		Name:        "KraneShares Global Carbon Strategy ETF",
		Description: "Carbon allowances and credits",
		Category:    "Carbon Markets",
	},
}

var benchmarkNames = map[string]string{
	"SPY":  "S&P 500",
	"SPLV": "S&P 500 Low Volatility",
	"AGG":  "Total Bond Market",
	"LQD":  "Investment Grade Corporate",
	"TLT":  "Long-Term Treasury",
	"HYG":  "High Yield Corporate",
	"QCLN": "NASDAQ Clean Energy",
	"VGT":  "Vanguard Technology",
	"XLI":  "SPDR Industrial",
	"GLD":  "Gold ETF",
	"USO":  "Oil ETF",
}

// MarketEvents returns the fixed macro event table, oldest first
func MarketEvents() []MarketEvent {
	out := make([]MarketEvent, len(marketEvents))
	copy(out, marketEvents)
	return out
}

// BenchmarksFor returns the curated benchmark tickers for an ETF, falling
// back to the broad-market pair for unknown tickers.
func BenchmarksFor(ticker string) []string {
	if b, ok := benchmarks[ticker]; ok {
		out := make([]string, len(b))
		copy(out, b)
		return out
	}
	out := make([]string, len(defaultBenchmarks))
	copy(out, defaultBenchmarks)
	return out
}

// Info returns descriptive info for an ETF, with a generic default for
// tickers outside the curated set.
func Info(ticker string) ETFInfo {
	if info, ok := etfInfo[ticker]; ok {
		return info
	}
	return ETFInfo{Name: ticker, Description: "ETF analysis", Category: "Unknown"}
}

// Tickers returns the curated ETF tickers, sorted
func Tickers() []string {
	return []string{"BGRN", "ICLN", "KRBN"}
}

// BenchmarkName returns the human-readable index name for a benchmark ticker
func BenchmarkName(ticker string) string {
	if name, ok := benchmarkNames[ticker]; ok {
		return name
	}
	return "Market Index"
}
