package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
)

// Publisher is a kafka-go backed EventPublisher. The writer dials lazily
// on the first message.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher writes to topic on the given brokers, hashing keys to
// partitions and waiting for all in-sync replicas
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Publish encodes event as JSON. Messages with the same key land on the
// same partition.
func (p *Publisher) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx,
		kafka.Message{
			Key:   []byte(key),
			Value: data,
		},
	)
}

// Close flushes pending messages and releases the writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
