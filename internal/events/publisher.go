package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TypeOrderPlaced = "order.placed"
	TypeOrderPaid   = "order.paid"
)

// Event is the order-lifecycle record published for downstream
// consumers (fulfilment, analytics).
type Event struct {
	Type            string    `json:"type"`
	BillNumber      string    `json:"bill_number"`
	SessionID       string    `json:"session_id"`
	Method          string    `json:"method"`
	Total           string    `json:"total"`
	Currency        string    `json:"currency"`
	SettlementTotal string    `json:"settlement_total,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Kafka publishes order events to a single topic. Best-effort: the
// caller logs and continues on failure.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers ...string) *Kafka {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Kafka{writer: w}
}

func (k *Kafka) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.BillNumber),
		Value: payload,
	})
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

// Nop is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
