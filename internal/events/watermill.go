package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// WatermillPublisher bridges the Publisher port onto a watermill
// message.Publisher. Events are published as JSON to a single topic.
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewKafkaPublisher publishes events to Kafka. Used when brokers are
// configured.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*WatermillPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	return &WatermillPublisher{publisher: publisher, topic: topic}, nil
}

// NewGoChannelPublisher is the in-process pub/sub used in local mode, where
// no broker is configured but subscribers in the same process may still care.
func NewGoChannelPublisher(topic string, logger *slog.Logger) *WatermillPublisher {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	return &WatermillPublisher{publisher: pubsub, topic: topic}
}

func (p *WatermillPublisher) Publish(_ context.Context, eventType string, data interface{}) error {
	event := NewEvent(eventType, data)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", eventType, err)
	}
	msg := message.NewMessage(event.ID, payload)
	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", eventType, err)
	}
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}
