package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/stilbar/internal/application/conversion"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

func TestPublishConversionCompleted(t *testing.T) {
	w := &fakeWriter{}
	pub := NewEventPublisher(NewProducerWithWriter(w, nil))

	event := conversion.Event{
		Code:       "T |-04r.15r-| H",
		Normalized: "T|–04r.15r–|H",
		SMILES:     "OC1=CC=CC=C1",
		Method:     ctypes.MethodLookup,
		Confidence: 1.0,
		OccurredAt: time.Now().UTC(),
	}
	require.NoError(t, pub.PublishConversionCompleted(context.Background(), event))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, TopicConversionCompleted, msg.Topic)
	assert.Equal(t, event.Normalized, string(msg.Key))

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(msg.Value, &envelope))
	assert.Equal(t, EventTypeConversionCompleted, envelope.EventType)
	assert.NotEmpty(t, envelope.EventID)

	var got conversion.Event
	require.NoError(t, json.Unmarshal(envelope.Payload, &got))
	assert.Equal(t, event.SMILES, got.SMILES)
	assert.Equal(t, event.Method, got.Method)
}

func TestEnqueueBatchJob(t *testing.T) {
	w := &fakeWriter{}
	queue := NewJobQueue(NewProducerWithWriter(w, nil))

	job := &conversion.BatchJob{
		ID:          "job-1",
		Codes:       []string{"H", "T"},
		State:       ctypes.BatchJobQueued,
		SubmittedAt: time.Now().UTC(),
	}
	require.NoError(t, queue.EnqueueBatchJob(context.Background(), job))

	require.Len(t, w.messages, 1)
	assert.Equal(t, TopicBatchJobs, w.messages[0].Topic)
	assert.Equal(t, "job-1", string(w.messages[0].Key))

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &envelope))
	assert.Equal(t, EventTypeBatchJobSubmitted, envelope.EventType)
}
