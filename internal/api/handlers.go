package api

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/trogers1052/etf-analytics/internal/analytics"
	"github.com/trogers1052/etf-analytics/internal/catalog"
	"github.com/trogers1052/etf-analytics/internal/kafka"
	"github.com/trogers1052/etf-analytics/internal/marketdata"
	"github.com/trogers1052/etf-analytics/internal/models"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	fetcher       marketdata.Fetcher
	producer      *kafka.Producer
	defaultPeriod string
}

// NewHandler creates a new Handler. The producer may be nil, in which case
// no events are published.
func NewHandler(fetcher marketdata.Fetcher, producer *kafka.Producer, defaultPeriod string) *Handler {
	return &Handler{
		fetcher:       fetcher,
		producer:      producer,
		defaultPeriod: defaultPeriod,
	}
}

// ListETFs handles GET /etfs
func (h *Handler) ListETFs(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Ticker     string          `json:"ticker"`
		Info       catalog.ETFInfo `json:"info"`
		Benchmarks []string        `json:"benchmarks"`
	}
	var out []entry
	for _, t := range catalog.Tickers() {
		out = append(out, entry{Ticker: t, Info: catalog.Info(t), Benchmarks: catalog.BenchmarksFor(t)})
	}
	respondJSON(w, http.StatusOK, out)
}

// GetSummary handles GET /etfs/{symbol}/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	symbol, period := h.request(r)
	series, ok := h.load(w, r, symbol, period)
	if !ok {
		return
	}

	set, err := analytics.Summary(series)
	if err != nil {
		respondAnalysisError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"symbol":  symbol,
		"period":  period,
		"info":    catalog.Info(symbol),
		"metrics": set,
	})
}

// GetMetrics handles GET /etfs/{symbol}/metrics
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	symbol, period := h.request(r)
	series, ok := h.load(w, r, symbol, period)
	if !ok {
		return
	}

	set, err := analytics.Performance(series.Returns())
	if err != nil && set == nil {
		respondAnalysisError(w, err)
		return
	}

	h.publish(r, symbol, period, set)
	respondJSON(w, http.StatusOK, map[string]any{
		"symbol":    symbol,
		"period":    period,
		"metrics":   set,
		"undefined": analytics.UndefinedMetrics(err),
	})
}

// GetLiquidity handles GET /etfs/{symbol}/liquidity
func (h *Handler) GetLiquidity(w http.ResponseWriter, r *http.Request) {
	symbol, period := h.request(r)
	series, ok := h.load(w, r, symbol, period)
	if !ok {
		return
	}

	returns := series.Returns()
	set, err := analytics.Liquidity(returns, series.VolumesOn(returns.Dates))
	if err != nil && set == nil {
		respondAnalysisError(w, err)
		return
	}

	var interpretation string
	if set.Has(models.MetricAmihudIlliquidity) {
		interpretation = analytics.InterpretLiquidity(
			set[models.MetricAmihudIlliquidity],
			set[models.MetricZeroReturnPct],
			set[models.MetricVolumeTrend],
		)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"symbol":         symbol,
		"period":         period,
		"metrics":        set,
		"undefined":      analytics.UndefinedMetrics(err),
		"interpretation": interpretation,
	})
}

// GetHurst handles GET /etfs/{symbol}/hurst
func (h *Handler) GetHurst(w http.ResponseWriter, r *http.Request) {
	symbol, period := h.request(r)
	series, ok := h.load(w, r, symbol, period)
	if !ok {
		return
	}

	hurst, class, err := analytics.Hurst(series.Returns().Values)
	if err != nil {
		respondAnalysisError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"symbol":         symbol,
		"period":         period,
		"hurst_exponent": hurst,
		"classification": class,
	})
}

// GetEvents handles GET /etfs/{symbol}/events
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	symbol, period := h.request(r)
	series, ok := h.load(w, r, symbol, period)
	if !ok {
		return
	}

	impacts := analytics.EventImpacts(series, catalog.MarketEvents())
	if impacts == nil {
		impacts = []models.EventImpact{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"symbol": symbol,
		"period": period,
		"events": impacts,
	})
}

// GetCorrelations handles GET /etfs/{symbol}/correlations
func (h *Handler) GetCorrelations(w http.ResponseWriter, r *http.Request) {
	symbol, period := h.request(r)
	series, ok := h.load(w, r, symbol, period)
	if !ok {
		return
	}

	tickers := catalog.BenchmarksFor(symbol)
	benchmarks := marketdata.FetchBenchmarks(r.Context(), h.fetcher, tickers, period)

	start, end, aligned, err := analytics.CommonPeriod(series, benchmarks)
	if err != nil {
		respondAnalysisError(w, err)
		return
	}

	returns := make(map[string]models.ReturnSeries, len(aligned))
	for ticker, s := range aligned {
		returns[ticker] = s.Returns()
	}
	matrix, err := analytics.KendallMatrix(returns)
	if err != nil {
		respondAnalysisError(w, err)
		return
	}

	names := make(map[string]string, len(matrix.Tickers))
	for _, t := range matrix.Tickers {
		names[t] = catalog.BenchmarkName(t)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"symbol":          symbol,
		"period":          period,
		"common_start":    start.Format("2006-01-02"),
		"common_end":      end.Format("2006-01-02"),
		"matrix":          matrix,
		"benchmark_names": names,
	})
}

// ExportMetricsCSV handles GET /etfs/{symbol}/metrics/export
func (h *Handler) ExportMetricsCSV(w http.ResponseWriter, r *http.Request) {
	symbol, period := h.request(r)
	series, ok := h.load(w, r, symbol, period)
	if !ok {
		return
	}

	set, err := analytics.Performance(series.Returns())
	if err != nil && set == nil {
		respondAnalysisError(w, err)
		return
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_metrics.csv", symbol))

	cw := csv.NewWriter(w)
	cw.Write([]string{"metric", "value"})
	for _, name := range names {
		cw.Write([]string{name, fmt.Sprintf("%.6f", set[name])})
	}
	cw.Flush()
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) request(r *http.Request) (symbol, period string) {
	symbol = mux.Vars(r)["symbol"]
	period = r.URL.Query().Get("period")
	if period == "" {
		period = h.defaultPeriod
	}
	return symbol, period
}

// load fetches the OHLCV series, writing a 502 and returning false on
// failure.
func (h *Handler) load(w http.ResponseWriter, r *http.Request, symbol, period string) (models.PriceSeries, bool) {
	series, err := h.fetcher.FetchOHLCV(r.Context(), symbol, period)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Str("period", period).Msg("market data fetch failed")
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to load data for %s", symbol))
		return models.PriceSeries{}, false
	}
	return series, true
}

// publish sends an analysis event when a producer is configured. Publish
// failures are logged, never surfaced to the client.
func (h *Handler) publish(r *http.Request, symbol, period string, set models.MetricSet) {
	if h.producer == nil {
		return
	}
	if err := h.producer.PublishAnalysisCompleted(r.Context(), symbol, period, set); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("failed to publish analysis event")
	}
}

// respondAnalysisError maps the analytics error taxonomy to HTTP statuses
func respondAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analytics.ErrInsufficientData), errors.Is(err, analytics.ErrAlignmentEmpty):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]any{
		"error":     msg,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
