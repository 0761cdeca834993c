package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceBar represents one day of OHLCV data for an ETF
type PriceBar struct {
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// PriceSeries is an ordered OHLCV history with strictly increasing dates.
// Market holidays leave natural gaps; the series is never mutated after load.
type PriceSeries struct {
	Symbol string     `json:"symbol"`
	Bars   []PriceBar `json:"bars"`
}

// Len returns the number of bars in the series
func (s PriceSeries) Len() int {
	return len(s.Bars)
}

// Start returns the date of the first bar
func (s PriceSeries) Start() time.Time {
	if len(s.Bars) == 0 {
		return time.Time{}
	}
	return s.Bars[0].Date
}

// End returns the date of the last bar
func (s PriceSeries) End() time.Time {
	if len(s.Bars) == 0 {
		return time.Time{}
	}
	return s.Bars[len(s.Bars)-1].Date
}

// Closes returns the close prices as floats for numeric work
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i], _ = b.Close.Float64()
	}
	return closes
}

// Volumes returns the daily volumes as floats for numeric work
func (s PriceSeries) Volumes() []float64 {
	volumes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		volumes[i] = float64(b.Volume)
	}
	return volumes
}

// VolumesOn returns the volumes for the given dates, in order. Dates with
// no bar get zero volume. Used to pair a volume series with a derived
// return series.
func (s PriceSeries) VolumesOn(dates []time.Time) []float64 {
	byDate := make(map[time.Time]int64, len(s.Bars))
	for _, b := range s.Bars {
		byDate[b.Date] = b.Volume
	}
	volumes := make([]float64, len(dates))
	for i, d := range dates {
		volumes[i] = float64(byDate[d])
	}
	return volumes
}

// Restrict returns the sub-series whose dates fall within [from, to] inclusive
func (s PriceSeries) Restrict(from, to time.Time) PriceSeries {
	out := PriceSeries{Symbol: s.Symbol}
	for _, b := range s.Bars {
		if b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		out.Bars = append(out.Bars, b)
	}
	return out
}

// Returns derives the daily simple-return series by consecutive percentage
// change of close prices. The result is one element shorter than the source
// and inherits the source's non-first dates.
func (s PriceSeries) Returns() ReturnSeries {
	if len(s.Bars) < 2 {
		return ReturnSeries{Symbol: s.Symbol}
	}
	r := ReturnSeries{
		Symbol: s.Symbol,
		Dates:  make([]time.Time, 0, len(s.Bars)-1),
		Values: make([]float64, 0, len(s.Bars)-1),
	}
	closes := s.Closes()
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		r.Dates = append(r.Dates, s.Bars[i].Date)
		r.Values = append(r.Values, closes[i]/closes[i-1]-1)
	}
	return r
}

// ReturnSeries holds daily simple returns with their dates
type ReturnSeries struct {
	Symbol string      `json:"symbol"`
	Dates  []time.Time `json:"dates"`
	Values []float64   `json:"values"`
}

// Len returns the number of observations
func (r ReturnSeries) Len() int {
	return len(r.Values)
}
