package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/trogers1052/etf-analytics/internal/models"
)

// Summary computes the headline figures for a price series: current price,
// total return over the covered period, annualized volatility, and average
// daily volume.
func Summary(s models.PriceSeries) (models.MetricSet, error) {
	if s.Len() < 2 {
		return nil, fmt.Errorf("summary needs at least 2 bars, got %d: %w", s.Len(), ErrInsufficientData)
	}

	closes := s.Closes()
	first, last := closes[0], closes[len(closes)-1]
	if first == 0 {
		return nil, fmt.Errorf("summary: first close is zero: %w", ErrInsufficientData)
	}

	set := models.MetricSet{
		models.MetricCurrentPrice:   last,
		models.MetricTotalReturnPct: (last/first - 1) * 100,
		models.MetricAvgDailyVolume: stat.Mean(s.Volumes(), nil),
	}

	if r := s.Returns(); r.Len() >= 2 {
		set[models.MetricAnnualizedVolatility] = stat.StdDev(r.Values, nil) * math.Sqrt(TradingDaysPerYear)
	}
	return set, nil
}
