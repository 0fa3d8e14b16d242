// Package kafka publishes domain events to the alert stream.
package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Valentinus295/econsentinel/internal/domain/port"
	pkgevents "github.com/Valentinus295/econsentinel/pkg/events"
	pkgkafka "github.com/Valentinus295/econsentinel/pkg/kafka"
)

// Compile-time interface check.
var _ port.EventPublisher = (*EventPublisher)(nil)

// EventPublisher implements the EventPublisher port using Kafka. The
// aggregate ID keys each message so every run's events land in order on
// one partition.
type EventPublisher struct {
	producer *pkgkafka.Producer
	logger   *slog.Logger
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(producer *pkgkafka.Producer, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		logger:   logger,
	}
}

// Publish sends domain events to the given topic.
func (p *EventPublisher) Publish(ctx context.Context, topic string, events ...pkgevents.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		p.logger.DebugContext(ctx, "publishing event to Kafka",
			slog.String("topic", topic),
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID().String()),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: evt.Payload(),
			Headers: map[string]string{
				"event_id":   evt.EventID().String(),
				"event_type": evt.EventType(),
			},
		})
	}

	if err := p.producer.Publish(ctx, topic, messages...); err != nil {
		return fmt.Errorf("publish events to topic %s: %w", topic, err)
	}
	return nil
}
