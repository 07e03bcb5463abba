// Package kafka publishes order lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"procserve/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Publisher implements ports.OrderEventPublisher on top of a kafka-go
// writer. Messages are keyed by order id so every event of one order lands
// in the same partition and stays ordered.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// message is the wire shape of one order event.
type message struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	TenantID    string `json:"tenantId"`
	Status      string `json:"status"`
	Kind        string `json:"kind"`
}

// Publish sends one event. The caller treats failures as non-fatal.
func (p *Publisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	value, err := json.Marshal(message{
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		TenantID:    event.TenantID.String(),
		Status:      event.Status,
		Kind:        event.Kind,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
