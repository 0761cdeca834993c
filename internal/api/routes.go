package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Analysis routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/etfs", handler.ListETFs).Methods("GET")
	api.HandleFunc("/etfs/{symbol}/summary", handler.GetSummary).Methods("GET")
	api.HandleFunc("/etfs/{symbol}/metrics", handler.GetMetrics).Methods("GET")
	api.HandleFunc("/etfs/{symbol}/metrics/export", handler.ExportMetricsCSV).Methods("GET")
	api.HandleFunc("/etfs/{symbol}/liquidity", handler.GetLiquidity).Methods("GET")
	api.HandleFunc("/etfs/{symbol}/hurst", handler.GetHurst).Methods("GET")
	api.HandleFunc("/etfs/{symbol}/events", handler.GetEvents).Methods("GET")
	api.HandleFunc("/etfs/{symbol}/correlations", handler.GetCorrelations).Methods("GET")

	return r
}
