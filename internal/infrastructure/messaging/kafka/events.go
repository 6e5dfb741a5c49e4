package kafka

import (
	"context"
	"encoding/json"

	"github.com/turtacn/stilbar/internal/application/conversion"
	"github.com/turtacn/stilbar/pkg/errors"
)

const eventSource = "stilbar"

// EventPublisher publishes conversion audit events.  It implements
// conversion.EventPublisher.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher constructs an EventPublisher.
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishConversionCompleted emits one audit event, keyed by normalized code
// so events for the same code stay ordered.
func (p *EventPublisher) PublishConversionCompleted(ctx context.Context, event conversion.Event) error {
	envelope, err := NewEnvelope(EventTypeConversionCompleted, eventSource, event)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode conversion event")
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event envelope")
	}
	return p.producer.Publish(ctx, TopicConversionCompleted, []byte(event.Normalized), data)
}

// JobQueue enqueues batch jobs for the worker pool.  It implements
// conversion.JobQueue.
type JobQueue struct {
	producer *Producer
}

// NewJobQueue constructs a JobQueue.
func NewJobQueue(producer *Producer) *JobQueue {
	return &JobQueue{producer: producer}
}

// EnqueueBatchJob publishes a job, keyed by job ID.
func (q *JobQueue) EnqueueBatchJob(ctx context.Context, job *conversion.BatchJob) error {
	envelope, err := NewEnvelope(EventTypeBatchJobSubmitted, eventSource, job)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode batch job")
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode job envelope")
	}
	return q.producer.Publish(ctx, TopicBatchJobs, []byte(job.ID), data)
}
