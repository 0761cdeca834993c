package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Hurst classification thresholds
const (
	HurstTrendingThreshold  = 0.55
	HurstReversionThreshold = 0.45
)

const (
	hurstMinObservations = 100
	hurstMinWindow       = 10
)

// Hurst classification labels
const (
	ClassTrending      = "TRENDING / PERSISTENT behavior"
	ClassMeanReverting = "MEAN-REVERTING behavior"
	ClassRandomWalk    = "RANDOM WALK behavior"
)

// Hurst estimates the long-memory exponent of a return series via
// rescaled-range analysis. The series is partitioned into windows of
// doubling sizes, the average R/S statistic is computed per window size,
// and the exponent is the slope of log(R/S) against log(window size).
// 0.5 indicates a random walk; values above suggest persistence, values
// below suggest mean reversion. Needs at least 100 observations.
func Hurst(values []float64) (float64, string, error) {
	if len(values) < hurstMinObservations {
		return 0, "", fmt.Errorf("hurst exponent needs at least %d observations, got %d: %w",
			hurstMinObservations, len(values), ErrInsufficientData)
	}

	var logW, logRS []float64
	for w := hurstMinWindow; w <= len(values)/2; w *= 2 {
		rs := avgRescaledRange(values, w)
		if rs <= 0 {
			continue
		}
		logW = append(logW, math.Log(float64(w)))
		logRS = append(logRS, math.Log(rs))
	}
	if len(logRS) < 2 {
		return 0, "", &UndefinedMetricError{Metric: "hurst_exponent", Reason: "rescaled range degenerate at all window sizes"}
	}

	_, h := stat.LinearRegression(logW, logRS, nil, false)

	switch {
	case h > HurstTrendingThreshold:
		return h, ClassTrending, nil
	case h < HurstReversionThreshold:
		return h, ClassMeanReverting, nil
	default:
		return h, ClassRandomWalk, nil
	}
}

// avgRescaledRange averages the R/S statistic over all full windows of the
// given size. Windows with zero dispersion are skipped.
func avgRescaledRange(values []float64, window int) float64 {
	var sum float64
	var n int
	for start := 0; start+window <= len(values); start += window {
		if rs, ok := rescaledRange(values[start : start+window]); ok {
			sum += rs
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// rescaledRange computes R/S for one window: the range of the mean-adjusted
// cumulative sum divided by the window's standard deviation.
func rescaledRange(chunk []float64) (float64, bool) {
	mean := stat.Mean(chunk, nil)

	var cum, minCum, maxCum float64
	var sqSum float64
	for _, v := range chunk {
		d := v - mean
		cum += d
		if cum < minCum {
			minCum = cum
		}
		if cum > maxCum {
			maxCum = cum
		}
		sqSum += d * d
	}
	s := math.Sqrt(sqSum / float64(len(chunk)))
	if s == 0 {
		return 0, false
	}
	return (maxCum - minCum) / s, true
}
