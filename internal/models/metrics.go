package models

import "time"

// Performance metric name constants
const (
	MetricAnnualizedVolatility = "annualized_volatility"
	MetricAnnualizedReturn     = "annualized_return"
	MetricSharpeRatio          = "sharpe_ratio"
	MetricSkewness             = "skewness"
	MetricKurtosis             = "kurtosis"
	MetricVaR5                 = "value_at_risk_5pct"
	MetricCVaR5                = "conditional_value_at_risk_5pct"
	MetricMaxDrawdown          = "max_drawdown"
)

// Liquidity metric name constants
const (
	MetricAvgDailyVolume    = "avg_daily_volume"
	MetricVolumeVolatility  = "volume_volatility"
	MetricAmihudIlliquidity = "amihud_illiquidity"
	MetricZeroReturnPct     = "zero_return_pct"
	MetricVolumeTrend       = "volume_trend"
)

// Summary metric name constants
const (
	MetricCurrentPrice   = "current_price"
	MetricTotalReturnPct = "total_return_pct"
)

// MetricSet maps metric names to scalar values. Produced once per
// (symbol, period) pair; metrics that could not be computed are simply
// absent rather than carrying NaN or infinity.
type MetricSet map[string]float64

// Has reports whether the named metric was computed
func (m MetricSet) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// CorrelationMatrix is a square symmetric matrix of pairwise rank
// correlations with a unit diagonal, indexed by ticker.
type CorrelationMatrix struct {
	Tickers []string    `json:"tickers"`
	Values  [][]float64 `json:"values"`
}

// At returns the correlation between two tickers, or false if either
// ticker is not in the matrix.
func (c CorrelationMatrix) At(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, t := range c.Tickers {
		if t == a {
			ia = i
		}
		if t == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return c.Values[ia][ib], true
}

// EventImpact reports the price move around a catalog event
type EventImpact struct {
	Event     string    `json:"event"`
	Date      time.Time `json:"date"`
	PrePrice  float64   `json:"pre_price"`
	PostPrice float64   `json:"post_price"`
	ImpactPct float64   `json:"impact_pct"`
}
