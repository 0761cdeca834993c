package models

import "time"

// AnalysisEvent represents a Kafka event emitted after an analysis run
type AnalysisEvent struct {
	EventType string    `json:"event_type"`
	Symbol    string    `json:"symbol"`
	Period    string    `json:"period"`
	Metrics   MetricSet `json:"metrics,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
