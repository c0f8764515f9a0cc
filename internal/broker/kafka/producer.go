package kafka

import (
	"context"
	"fmt"

	"card-binder/internal/config"

	wbkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// ProducerClient writes export events to the configured topic.
type ProducerClient struct {
	producer *wbkafka.Producer
	topic    string
	logger   *zlog.Zerolog
}

func NewProducerClient(cfg config.KafkaConfig, logger *zlog.Zerolog) (*ProducerClient, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka producer needs at least one broker")
	}
	if cfg.ExportTopic == "" {
		return nil, fmt.Errorf("kafka producer needs an export topic")
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.ExportTopic).
		Msg("Kafka producer configured")

	return &ProducerClient{
		producer: wbkafka.NewProducer(cfg.Brokers, cfg.ExportTopic),
		topic:    cfg.ExportTopic,
		logger:   logger,
	}, nil
}

func (p *ProducerClient) Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error {
	if err := p.producer.SendWithRetry(ctx, strategy, key, value); err != nil {
		return fmt.Errorf("send to %s: %w", p.topic, err)
	}
	return nil
}

func (p *ProducerClient) Topic() string {
	return p.topic
}

func (p *ProducerClient) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("close producer for %s: %w", p.topic, err)
	}
	p.logger.Debug().Str("topic", p.topic).Msg("Kafka producer closed")
	return nil
}
