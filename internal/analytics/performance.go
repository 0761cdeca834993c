package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/trogers1052/etf-analytics/internal/models"
)

// TradingDaysPerYear is the assumed number of trading days used for
// annualization.
const TradingDaysPerYear = 252

// varConfidence is the tail probability for VaR and CVaR.
const varConfidence = 0.05

// Performance computes risk and performance metrics from a daily return
// series. The result may be partial: metrics whose denominator is degenerate
// (for example sharpe_ratio on a zero-variance series) are omitted and
// reported through the returned error, which carries one UndefinedMetricError
// per missing metric.
//
// annualized_return is the arithmetic mean return scaled by 252. It is an
// approximation, not a CAGR. max_drawdown is computed additively on the
// cumulative sum of returns rather than on compounded price levels; this is
// non-standard but kept for compatibility with the reference numbers.
func Performance(r models.ReturnSeries) (models.MetricSet, error) {
	if r.Len() < 2 {
		return nil, fmt.Errorf("performance metrics need at least 2 returns, got %d: %w", r.Len(), ErrInsufficientData)
	}

	vals := r.Values
	mean := stat.Mean(vals, nil)
	std := stat.StdDev(vals, nil)
	annFactor := math.Sqrt(TradingDaysPerYear)

	set := models.MetricSet{
		models.MetricAnnualizedVolatility: std * annFactor,
		models.MetricAnnualizedReturn:     mean * TradingDaysPerYear,
		models.MetricMaxDrawdown:          maxDrawdown(vals),
	}

	var errs []error
	if std == 0 {
		errs = append(errs, &UndefinedMetricError{Metric: models.MetricSharpeRatio, Reason: "zero standard deviation"})
	} else {
		set[models.MetricSharpeRatio] = mean / std * annFactor
	}

	skew, kurt, ok := standardizedMoments(vals, mean)
	if !ok {
		errs = append(errs,
			&UndefinedMetricError{Metric: models.MetricSkewness, Reason: "zero variance"},
			&UndefinedMetricError{Metric: models.MetricKurtosis, Reason: "zero variance"})
	} else {
		set[models.MetricSkewness] = skew
		set[models.MetricKurtosis] = kurt
	}

	varThreshold := quantile(vals, varConfidence)
	set[models.MetricVaR5] = varThreshold
	set[models.MetricCVaR5] = tailMean(vals, varThreshold)

	return set, errors.Join(errs...)
}

// standardizedMoments returns population skewness and excess kurtosis.
// gonum's Skew and ExKurtosis apply sample-bias corrections; the reference
// convention is plain population moments, so these are computed directly.
func standardizedMoments(vals []float64, mean float64) (skew, kurt float64, ok bool) {
	n := float64(len(vals))
	var m2, m3, m4 float64
	for _, v := range vals {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m3 /= n
	m4 /= n
	if m2 == 0 {
		return 0, 0, false
	}
	return m3 / math.Pow(m2, 1.5), m4/(m2*m2) - 3, true
}

// quantile computes the p-quantile with linear interpolation between order
// statistics (the pandas default). gonum's Quantile interpolates the
// empirical CDF with a different convention, so this is done directly to
// keep the numbers reference-compatible.
func quantile(vals []float64, p float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// tailMean averages all values at or below the threshold
func tailMean(vals []float64, threshold float64) float64 {
	var sum float64
	var n int
	for _, v := range vals {
		if v <= threshold {
			sum += v
			n++
		}
	}
	if n == 0 {
		return threshold
	}
	return sum / float64(n)
}

// maxDrawdown returns the minimum of (cumulative return − running peak of
// cumulative return). Always ≤ 0.
func maxDrawdown(vals []float64) float64 {
	var cum, minDD float64
	peak := math.Inf(-1)
	for _, v := range vals {
		cum += v
		if cum > peak {
			peak = cum
		}
		if dd := cum - peak; dd < minDD {
			minDD = dd
		}
	}
	return minDD
}
