package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sportsbook/domain/interfaces"
	"sportsbook/events"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// KafkaEventPublisher publishes domain events as JSON messages keyed by event type
type KafkaEventPublisher struct {
	writer *kafka.Writer
}

// NewKafkaWriter creates a writer for the wager events topic
func NewKafkaWriter(brokers string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaEventPublisher creates a new Kafka-backed event publisher
func NewKafkaEventPublisher(writer *kafka.Writer) *KafkaEventPublisher {
	return &KafkaEventPublisher{writer: writer}
}

// Publish serializes the event and writes it to the topic
func (p *KafkaEventPublisher) Publish(event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type(), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.Type()),
		Value: payload,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type(), err)
	}

	return nil
}

// Close closes the underlying writer
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

var _ interfaces.EventPublisher = (*KafkaEventPublisher)(nil)

// noopPublisher drops events; used when no broker is configured
type noopPublisher struct{}

func (noopPublisher) Publish(event events.Event) error {
	log.WithField("eventType", event.Type()).Debug("Event publishing disabled, dropping event")
	return nil
}

// NewNoopPublisher creates a publisher that discards all events
func NewNoopPublisher() interfaces.EventPublisher {
	return noopPublisher{}
}
