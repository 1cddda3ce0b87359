package kafkabus

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/segmentio/kafka-go"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
)

// DefaultTopic receives POS orders when no topic is configured.
const DefaultTopic = "pos.orders"

// Header keys set on every published order.
const (
	HeaderReceiptID   = "receipt-id"
	HeaderContentType = "content-type"
)

// kafkaMessageWriter abstracts kafka.Writer for testability.
type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Dispatcher publishes POS orders to a Kafka topic, keyed by order id so all
// versions of one order land on the same partition.
type Dispatcher struct {
	writer kafkaMessageWriter
	closer func() error
}

// NewDispatcher creates a Kafka-backed dispatcher.
// brokers can be a comma-separated list of host:port.
func NewDispatcher(brokers string, topic string) (*Dispatcher, error) {
	var addrs []string
	for _, a := range strings.Split(brokers, ",") {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	if len(addrs) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &Dispatcher{writer: w, closer: w.Close}, nil
}

// NewDispatcherWith is only for tests to inject a fake writer.
func NewDispatcherWith(w kafkaMessageWriter) *Dispatcher {
	return &Dispatcher{writer: w}
}

func (d *Dispatcher) Dispatch(ctx context.Context, delivery types.DeliveryInput) error {
	if d == nil || d.writer == nil {
		return errors.New("kafka dispatcher not configured")
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(delivery.OrderID, 10)),
		Value: delivery.Body,
		Headers: []kafka.Header{
			{Key: HeaderReceiptID, Value: []byte(delivery.ReceiptID)},
			{Key: HeaderContentType, Value: []byte("application/json")},
		},
	}
	if err := d.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish order %d: %w", delivery.OrderID, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (d *Dispatcher) Close() error {
	if d == nil || d.closer == nil {
		return nil
	}
	return d.closer()
}

var _ ports.Dispatcher = (*Dispatcher)(nil)
