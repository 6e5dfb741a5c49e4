package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/stilbar/internal/config"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/pkg/errors"
)

// writerInterface abstracts kafka.Writer for testing.
type writerInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes messages to Kafka.
type Producer struct {
	writer writerInterface
	logger logging.Logger
	closed atomic.Bool

	messagesSent   atomic.Int64
	messagesFailed atomic.Int64
}

// NewProducer builds a Producer from the Kafka config.
func NewProducer(cfg config.KafkaConfig, log logging.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.InvalidParam("kafka brokers required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	maxAttempts := cfg.ProducerRetries + 1
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		MaxAttempts:            maxAttempts,
		BatchSize:              batchSize,
		BatchTimeout:           time.Second,
		WriteTimeout:           10 * time.Second,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: cfg.AutoCreateTopics,
	}

	return &Producer{writer: writer, logger: log.Named("kafka_producer")}, nil
}

// NewProducerWithWriter wraps an existing writer (used by tests).
func NewProducerWithWriter(w writerInterface, log logging.Logger) *Producer {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Producer{writer: w, logger: log}
}

// Publish sends one message.  The key controls partition assignment.
func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	if p.closed.Load() {
		return errors.New(errors.CodeInternal, "producer closed")
	}
	if topic == "" {
		return errors.InvalidParam("topic required")
	}
	if len(value) == 0 {
		return errors.InvalidParam("value required")
	}

	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		p.messagesFailed.Add(1)
		return errors.Wrap(err, errors.CodeInternal, "failed to publish message")
	}
	p.messagesSent.Add(1)
	return nil
}

// Sent returns the number of successfully published messages.
func (p *Producer) Sent() int64 {
	return p.messagesSent.Load()
}

// Failed returns the number of failed publishes.
func (p *Producer) Failed() int64 {
	return p.messagesFailed.Load()
}

// Close flushes and shuts the producer down.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := p.writer.Close(); err != nil {
		p.logger.Error("failed to close Kafka producer", logging.Err(err))
		return err
	}
	p.logger.Info("closed Kafka producer")
	return nil
}
