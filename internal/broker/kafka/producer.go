package kafka

import (
	"context"
	"fmt"

	"photo-brander/internal/config"

	"github.com/segmentio/kafka-go"
	wbkafka "github.com/wb-go/wbf/kafka"
)

type ProducerClient struct {
	producer *wbkafka.Producer
	topic    string
}

// NewProducerClient publishes to cfg.Events.Topic. Each message is attempted
// once and all messages with the same key land on the same partition.
func NewProducerClient(cfg *config.Config) *ProducerClient {
	producer := wbkafka.NewProducer(cfg.Events.Brokers, cfg.Events.Topic)
	producer.Writer.Balancer = &kafka.Hash{}
	producer.Writer.RequiredAcks = kafka.RequireOne
	producer.Writer.MaxAttempts = 1

	return &ProducerClient{
		producer: producer,
		topic:    cfg.Events.Topic,
	}
}

func (p *ProducerClient) Send(ctx context.Context, key, value []byte) error {
	if err := p.producer.Send(ctx, key, value); err != nil {
		return fmt.Errorf("failed to write message to %s: %w", p.topic, err)
	}
	return nil
}

func (p *ProducerClient) Close() error {
	return p.producer.Close()
}
