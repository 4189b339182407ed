package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"statement-ledger/internal/events"
)

// batchTimeout bounds how long a synchronous Publish waits for a batch to
// fill. Events are written one at a time.
const batchTimeout = 10 * time.Millisecond

// Publisher writes events as JSON messages, one Kafka topic per event
// topic, keyed by the owning user so a user's events stay ordered.
type Publisher struct {
	writer *kafka.Writer
	prefix string
}

func NewPublisher(brokers []string, topicPrefix string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           batchTimeout,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		prefix: topicPrefix,
	}
}

func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.prefix + topic,
		Key:   []byte(eventKey(event)),
		Value: data,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func eventKey(event any) string {
	switch e := event.(type) {
	case events.StatementCreated:
		return e.UserID
	case events.TransferCompleted:
		return e.SenderID
	}
	return ""
}

var _ events.Publisher = (*Publisher)(nil)
