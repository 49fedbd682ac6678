// Package kafka publishes order status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ ports.StatusChangePublisher = (*StatusChangePublisher)(nil)

// StatusChangePublisher writes one message per status change, keyed by order asset id
// so that all changes of an order land on the same partition in order.
type StatusChangePublisher struct {
	writer messageWriter
}

// NewWriter builds the writer used in production.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
}

func NewStatusChangePublisher(writer messageWriter) *StatusChangePublisher {
	return &StatusChangePublisher{writer: writer}
}

// statusChangedMessage is the message value.
type statusChangedMessage struct {
	AssetID       string    `json:"asset_id"`
	TransactionID string    `json:"transaction_id"`
	Status        int       `json:"status"`
	StatusName    string    `json:"status_name"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (p *StatusChangePublisher) Publish(ctx context.Context, change order.StatusChanged) error {
	value, err := json.Marshal(statusChangedMessage{
		AssetID:       change.AssetID.String(),
		TransactionID: change.TransactionID.String(),
		Status:        int(change.Status),
		StatusName:    change.Status.String(),
		OccurredAt:    change.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal status change: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(change.AssetID.String()),
		Value: value,
		Time:  change.OccurredAt,
	}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{headers: &msg.Headers})

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write status change of %s: %w", change.AssetID, err)
	}
	return nil
}

func (p *StatusChangePublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every change. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, order.StatusChanged) error { return nil }

// headerCarrier adapts Kafka headers to the otel propagation carrier.
type headerCarrier struct {
	headers *[]kafka.Header
}

func (c headerCarrier) Get(key string) string {
	for _, h := range *c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i, h := range *c.headers {
		if h.Key == key {
			(*c.headers)[i].Value = []byte(value)
			return
		}
	}
	*c.headers = append(*c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*c.headers))
	for _, h := range *c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}
