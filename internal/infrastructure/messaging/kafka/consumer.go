package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/stilbar/internal/application/conversion"
	"github.com/turtacn/stilbar/internal/config"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/pkg/errors"
)

// readerInterface abstracts kafka.Reader for testing.
type readerInterface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// JobHandler processes one decoded batch job.
type JobHandler func(ctx context.Context, job *conversion.BatchJob) error

// JobConsumer reads batch jobs from Kafka and hands them to a handler.
// Messages are committed only after the handler returns, so a crashed worker
// replays its in-flight job.
type JobConsumer struct {
	reader  readerInterface
	handler JobHandler
	logger  logging.Logger
	closed  atomic.Bool

	processed atomic.Int64
	failed    atomic.Int64
}

// NewJobConsumer builds a consumer in the worker consumer group.
func NewJobConsumer(cfg config.KafkaConfig, handler JobHandler, log logging.Logger) (*JobConsumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.InvalidParam("kafka brokers required")
	}
	if handler == nil {
		return nil, errors.InvalidParam("job handler required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	startOffset := kafka.FirstOffset
	if cfg.AutoOffsetReset == "latest" {
		startOffset = kafka.LastOffset
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           cfg.Brokers,
		GroupID:           cfg.GroupID,
		Topic:             TopicBatchJobs,
		MinBytes:          1,
		MaxBytes:          10 * 1024 * 1024,
		MaxWait:           time.Second,
		StartOffset:       startOffset,
		SessionTimeout:    30 * time.Second,
		HeartbeatInterval: 3 * time.Second,
	})

	return &JobConsumer{
		reader:  reader,
		handler: handler,
		logger:  log.Named("kafka_consumer"),
	}, nil
}

// NewJobConsumerWithReader wraps an existing reader (used by tests).
func NewJobConsumerWithReader(r readerInterface, handler JobHandler, log logging.Logger) *JobConsumer {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &JobConsumer{reader: r, handler: handler, logger: log}
}

// Run consumes jobs until the context is cancelled.
func (c *JobConsumer) Run(ctx context.Context) error {
	c.logger.Info("batch job consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("batch job consumer stopping")
				return nil
			}
			return errors.Wrap(err, errors.CodeInternal, "failed to fetch message")
		}

		if err := c.handleMessage(ctx, msg); err != nil {
			c.failed.Add(1)
			c.logger.Error("batch job failed",
				logging.String("key", string(msg.Key)), logging.Err(err))
		} else {
			c.processed.Add(1)
		}

		// Commit either way: a poison message must not wedge the
		// partition.  Failures are recorded on the job itself.
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, errors.CodeInternal, "failed to commit message")
		}
	}
}

func (c *JobConsumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	var envelope EventEnvelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode event envelope")
	}
	var job conversion.BatchJob
	if err := json.Unmarshal(envelope.Payload, &job); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode batch job")
	}
	return c.handler(ctx, &job)
}

// Processed returns the number of successfully handled jobs.
func (c *JobConsumer) Processed() int64 {
	return c.processed.Load()
}

// Failed returns the number of failed jobs.
func (c *JobConsumer) Failed() int64 {
	return c.failed.Load()
}

// Close shuts the consumer down.
func (c *JobConsumer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.reader.Close()
}
