package broker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"mesaYaBooking/internal/modules/realtime/domain"
)

// Observer counts events exchanged with Kafka.
type Observer interface {
	KafkaEvent(direction, result string)
}

type KafkaConsumer struct {
	reader   *kafka.Reader
	observer Observer
	backoff  time.Duration
}

func NewKafkaConsumer(brokers []string, groupID string, topic string, observer Observer) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
		observer: observer,
		backoff:  time.Second,
	}
}

// Consume reads messages until ctx is cancelled. Handler errors are logged and the message is
// still committed.
func (c *KafkaConsumer) Consume(ctx context.Context, handler func(*domain.Message) error) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.backoff):
			}
			continue
		}
		msg := decodeMessage(m)
		slog.Debug("kafka message consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("entity", msg.Entity),
			slog.String("action", msg.Action),
			slog.String("resourceId", msg.ResourceID),
			slog.Any("metadata", msg.Metadata),
		)
		if err := handler(msg); err != nil {
			slog.Warn("kafka handler error", slog.Any("error", err))
			c.observe("error")
			continue
		}
		c.observe("ok")
	}
}

func (c *KafkaConsumer) observe(result string) {
	if c.observer != nil {
		c.observer.KafkaEvent("in", result)
	}
}
