package broker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"mesaYaBooking/internal/modules/realtime/domain"
	reservations "mesaYaBooking/internal/modules/reservations/domain"
)

// MessageWriter is the subset of *kafka.Writer used by the publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes committed reservation events so other instances can refresh their
// availability. Every event carries the instance id as its origin.
type KafkaPublisher struct {
	writer   MessageWriter
	origin   string
	observer Observer
	timeout  time.Duration
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
}

func NewKafkaPublisher(writer MessageWriter, origin string, observer Observer) *KafkaPublisher {
	return &KafkaPublisher{
		writer:   writer,
		origin:   strings.TrimSpace(origin),
		observer: observer,
		timeout:  5 * time.Second,
	}
}

// Publish writes the event keyed by its date so events of one day stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, event reservations.Event) error {
	msg := domain.BuildReservationMessage(event, map[string]string{domain.MetadataOrigin: p.origin})
	value, err := encodeMessage(msg)
	if err != nil {
		p.observe("error")
		return fmt.Errorf("encode reservation event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.MetadataValue(domain.MetadataDate)),
		Value: value,
		Time:  msg.Timestamp,
	})
	if err != nil {
		p.observe("error")
		return fmt.Errorf("publish reservation event %s: %w", msg.ResourceID, err)
	}
	p.observe("ok")
	slog.Debug("kafka event published", slog.String("topic", msg.Topic), slog.String("resourceId", msg.ResourceID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) observe(result string) {
	if p.observer != nil {
		p.observer.KafkaEvent("out", result)
	}
}
