package analytics

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/trogers1052/etf-analytics/internal/models"
)

// AlignSeries inner-joins a set of return series on date, dropping any date
// missing from at least one series. Tickers come back sorted for a stable
// matrix order. Fails with ErrAlignmentEmpty when fewer than 2 dates survive
// the intersection.
func AlignSeries(series map[string]models.ReturnSeries) (tickers []string, aligned map[string][]float64, err error) {
	if len(series) == 0 {
		return nil, nil, fmt.Errorf("no series to align: %w", ErrAlignmentEmpty)
	}

	for t := range series {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	// Count how many series carry each date; keep dates present in all.
	counts := make(map[time.Time]int)
	for _, s := range series {
		for _, d := range s.Dates {
			counts[d]++
		}
	}
	var common []time.Time
	for d, n := range counts {
		if n == len(series) {
			common = append(common, d)
		}
	}
	if len(common) < 2 {
		return nil, nil, fmt.Errorf("aligned %d series to %d common dates: %w", len(series), len(common), ErrAlignmentEmpty)
	}
	sort.Slice(common, func(i, j int) bool { return common[i].Before(common[j]) })

	aligned = make(map[string][]float64, len(series))
	for t, s := range series {
		byDate := make(map[time.Time]float64, len(s.Dates))
		for i, d := range s.Dates {
			byDate[d] = s.Values[i]
		}
		vals := make([]float64, len(common))
		for i, d := range common {
			vals[i] = byDate[d]
		}
		aligned[t] = vals
	}
	return tickers, aligned, nil
}

// KendallMatrix computes the pairwise Kendall rank correlation matrix over
// the date intersection of the given return series. Rank correlation is used
// instead of Pearson for robustness to the fat tails of daily returns. The
// matrix is symmetric with a unit diagonal.
func KendallMatrix(series map[string]models.ReturnSeries) (models.CorrelationMatrix, error) {
	tickers, aligned, err := AlignSeries(series)
	if err != nil {
		return models.CorrelationMatrix{}, err
	}

	n := len(tickers)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			tau := stat.Kendall(aligned[tickers[i]], aligned[tickers[j]], nil)
			values[i][j], values[j][i] = tau, tau
		}
	}

	return models.CorrelationMatrix{Tickers: tickers, Values: values}, nil
}
