package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Header keys set on every message.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
)

// Source identifies this service in the source header.
const Source = "hotel-reservations"

// messageWriter is the subset of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes reservation events to one topic, keyed by
// reservation id so every event for a reservation lands on the same partition.
type KafkaPublisher struct {
	w messageWriter
}

// NewKafkaPublisher builds a publisher over a synchronous kafka.Writer.
// Publish blocks until all in-sync replicas acknowledge the message.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
	}}
}

// Publish encodes ev as JSON and writes it.
func (p *KafkaPublisher) Publish(ctx context.Context, ev ReservationEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events.KafkaPublisher.Publish: encode: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.ReservationID.String()),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(ev.ID.String())},
			{Key: HeaderEventType, Value: []byte(ev.Type)},
			{Key: HeaderSource, Value: []byte(Source)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events.KafkaPublisher.Publish: %w", err)
	}
	return nil
}

// Close flushes pending writes and releases broker connections.
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// NopPublisher discards every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ReservationEvent) error { return nil }
func (NopPublisher) Close() error                                    { return nil }
