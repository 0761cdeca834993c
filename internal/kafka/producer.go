package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/trogers1052/etf-analytics/internal/models"
)

// Producer handles publishing analysis events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishAnalysisCompleted publishes the metric set computed for a symbol
// and period so downstream consumers can react without recomputing.
func (p *Producer) PublishAnalysisCompleted(ctx context.Context, symbol, period string, metrics models.MetricSet) error {
	event := models.AnalysisEvent{
		EventType: "ANALYSIS_COMPLETED",
		Symbol:    symbol,
		Period:    period,
		Metrics:   metrics,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, symbol, event)
}

func (p *Producer) publish(ctx context.Context, key string, event models.AnalysisEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
