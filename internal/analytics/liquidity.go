package analytics

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/trogers1052/etf-analytics/internal/models"
)

// zeroReturnThreshold is the materiality cutoff below which a daily move
// counts as no meaningful price change.
const zeroReturnThreshold = 0.001

// amihudScale converts the Amihud ratio to the conventional per-million
// units.
const amihudScale = 1e6

// Liquidity computes trading-activity metrics from a daily return series and
// its parallel volume series. Zero-volume days are skipped when averaging the
// Amihud ratio; if every day has zero volume the metric is omitted and
// reported through an UndefinedMetricError, as is volume_volatility when the
// mean volume is zero.
func Liquidity(r models.ReturnSeries, volumes []float64) (models.MetricSet, error) {
	if r.Len() == 0 {
		return nil, fmt.Errorf("liquidity metrics need a non-empty return series: %w", ErrInsufficientData)
	}
	if len(volumes) != r.Len() {
		return nil, fmt.Errorf("return series has %d observations but volume series has %d", r.Len(), len(volumes))
	}

	meanVol := stat.Mean(volumes, nil)
	set := models.MetricSet{
		models.MetricAvgDailyVolume: meanVol,
		models.MetricZeroReturnPct:  zeroReturnPct(r.Values),
		models.MetricVolumeTrend:    volumeTrend(volumes),
	}

	var errs []error
	if meanVol == 0 {
		errs = append(errs, &UndefinedMetricError{Metric: models.MetricVolumeVolatility, Reason: "zero mean volume"})
	} else if r.Len() < 2 {
		errs = append(errs, &UndefinedMetricError{Metric: models.MetricVolumeVolatility, Reason: "single observation"})
	} else {
		set[models.MetricVolumeVolatility] = stat.StdDev(volumes, nil) / meanVol
	}

	if amihud, ok := amihudIlliquidity(r.Values, volumes); ok {
		set[models.MetricAmihudIlliquidity] = amihud
	} else {
		errs = append(errs, &UndefinedMetricError{Metric: models.MetricAmihudIlliquidity, Reason: "no days with non-zero volume"})
	}

	return set, errors.Join(errs...)
}

// amihudIlliquidity averages |return|/volume over days with non-zero volume
func amihudIlliquidity(returns, volumes []float64) (float64, bool) {
	var sum float64
	var n int
	for i, v := range volumes {
		if v == 0 {
			continue
		}
		sum += math.Abs(returns[i]) / v * amihudScale
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// zeroReturnPct returns the percentage of days with no meaningful move
func zeroReturnPct(returns []float64) float64 {
	var n int
	for _, v := range returns {
		if math.Abs(v) < zeroReturnThreshold {
			n++
		}
	}
	return float64(n) / float64(len(returns)) * 100
}

// volumeTrend is the OLS slope of volume against sequential day index,
// in volume units per trading day.
func volumeTrend(volumes []float64) float64 {
	if len(volumes) < 2 {
		return 0
	}
	idx := make([]float64, len(volumes))
	for i := range idx {
		idx[i] = float64(i)
	}
	_, slope := stat.LinearRegression(idx, volumes, nil, false)
	return slope
}

// InterpretLiquidity classifies the three liquidity metrics into a
// multi-line human-readable status. Thresholds are fixed.
func InterpretLiquidity(amihud, zeroReturnPct, volumeTrend float64) string {
	var parts []string

	switch {
	case amihud > 1:
		parts = append(parts, "High illiquidity - niche market characteristics")
	case amihud > 0.1:
		parts = append(parts, "Moderate illiquidity - transitioning market")
	default:
		parts = append(parts, "Low illiquidity - mainstream market characteristics")
	}

	switch {
	case zeroReturnPct > 5:
		parts = append(parts, "High inactive trading days - limited institutional participation")
	case zeroReturnPct > 2:
		parts = append(parts, "Moderate inactive days - growing but not mainstream")
	default:
		parts = append(parts, "Low inactive days - active institutional market")
	}

	if volumeTrend > 0 {
		parts = append(parts, fmt.Sprintf("Increasing volume trend - market mainstreaming (+%.0f/day)", volumeTrend))
	} else {
		parts = append(parts, fmt.Sprintf("Decreasing volume trend - market consolidation (%.0f/day)", volumeTrend))
	}

	return strings.Join(parts, "\n")
}

// CompareVolatility relates an ETF's annualized volatility to the SPY and
// SPLV benchmarks and labels the risk tier.
func CompareVolatility(etfVol, spyVol, splvVol float64, ticker string) (string, error) {
	if spyVol == 0 || splvVol == 0 {
		return "", &UndefinedMetricError{Metric: "volatility_ratio", Reason: "zero benchmark volatility"}
	}
	spyRatio := etfVol / spyVol
	splvRatio := etfVol / splvVol

	var tier string
	switch {
	case spyRatio < 0.3:
		tier = "extremely low risk"
	case spyRatio < 0.7:
		tier = "low risk"
	case spyRatio < 1.2:
		tier = "moderate risk"
	default:
		tier = "high risk"
	}

	return fmt.Sprintf("%s is %.2fx SPY volatility - %s\n%s vs SPLV: %.2fx the volatility",
		ticker, spyRatio, tier, ticker, splvRatio), nil
}
