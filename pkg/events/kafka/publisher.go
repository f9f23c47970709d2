// Package kafka provides a Kafka-backed implementation of events.Publisher.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// Publisher publishes events to a Kafka topic.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Publisher writing to the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish marshals the event to JSON and writes it to the configured topic.
// The topic argument is recorded as the message key so consumers can fan out
// on event kind.
func (p *Publisher) Publish(topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.writer.WriteMessages(
		context.Background(),
		kafka.Message{
			Key:   []byte(topic),
			Value: data,
		},
	)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
