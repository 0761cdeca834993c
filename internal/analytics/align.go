package analytics

import (
	"fmt"
	"time"

	"github.com/trogers1052/etf-analytics/internal/models"
)

// CommonPeriod computes the latest-start/earliest-end date range shared by
// the primary series and all non-empty benchmark series, and restricts every
// series to it so that downstream comparisons cover the same period. Empty
// benchmark series are tolerated and dropped. Fails with ErrAlignmentEmpty
// when the primary is empty or no overlap exists.
func CommonPeriod(primary models.PriceSeries, benchmarks map[string]models.PriceSeries) (start, end time.Time, aligned map[string]models.PriceSeries, err error) {
	if primary.Len() == 0 {
		return start, end, nil, fmt.Errorf("primary series %s is empty: %w", primary.Symbol, ErrAlignmentEmpty)
	}

	start, end = primary.Start(), primary.End()
	for _, s := range benchmarks {
		if s.Len() == 0 {
			continue
		}
		if s.Start().After(start) {
			start = s.Start()
		}
		if s.End().Before(end) {
			end = s.End()
		}
	}
	if start.After(end) {
		return start, end, nil, fmt.Errorf("no common period across %d series: %w", len(benchmarks)+1, ErrAlignmentEmpty)
	}

	aligned = make(map[string]models.PriceSeries, len(benchmarks)+1)
	aligned[primary.Symbol] = primary.Restrict(start, end)
	for ticker, s := range benchmarks {
		if s.Len() == 0 {
			continue
		}
		aligned[ticker] = s.Restrict(start, end)
	}
	return start, end, aligned, nil
}
