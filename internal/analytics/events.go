package analytics

import (
	"time"

	"github.com/trogers1052/etf-analytics/internal/catalog"
	"github.com/trogers1052/etf-analytics/internal/models"
)

// eventWindowDays is the calendar-day half-width of the window examined
// around each event.
const eventWindowDays = 10

// EventImpacts measures the price move around each catalog event that falls
// inside the series' covered date range. The pre price is the close on the
// first trading day within ten calendar days before the event; the post
// price is the close on the last trading day within ten calendar days after.
// Events outside the range, events with malformed dates, and events whose
// window holds no trading days are silently omitted. Partial output is
// normal, never an error.
func EventImpacts(s models.PriceSeries, events []catalog.MarketEvent) []models.EventImpact {
	if s.Len() == 0 {
		return nil
	}

	var impacts []models.EventImpact
	for _, ev := range events {
		date, err := time.Parse("2006-01-02", ev.Date)
		if err != nil {
			continue
		}
		if date.Before(s.Start()) || date.After(s.End()) {
			continue
		}

		window := s.Restrict(date.AddDate(0, 0, -eventWindowDays), date.AddDate(0, 0, eventWindowDays))
		if window.Len() == 0 {
			continue
		}

		pre, _ := window.Bars[0].Close.Float64()
		post, _ := window.Bars[window.Len()-1].Close.Float64()
		if pre == 0 || post == 0 {
			continue
		}

		impacts = append(impacts, models.EventImpact{
			Event:     ev.Label,
			Date:      date,
			PrePrice:  pre,
			PostPrice: post,
			ImpactPct: (post - pre) / pre * 100,
		})
	}
	return impacts
}
