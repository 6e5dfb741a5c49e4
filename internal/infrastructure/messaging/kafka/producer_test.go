package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/stilbar/internal/config"
)

// fakeWriter captures written messages.
type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(config.KafkaConfig{}, nil)
	require.Error(t, err)
}

func TestPublish(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, nil)

	err := p.Publish(context.Background(), TopicConversionCompleted, []byte("H"), []byte(`{"a":1}`))
	require.NoError(t, err)
	require.Len(t, w.messages, 1)
	assert.Equal(t, TopicConversionCompleted, w.messages[0].Topic)
	assert.Equal(t, []byte("H"), w.messages[0].Key)
	assert.EqualValues(t, 1, p.Sent())
}

func TestPublish_Validation(t *testing.T) {
	p := NewProducerWithWriter(&fakeWriter{}, nil)
	ctx := context.Background()

	assert.Error(t, p.Publish(ctx, "", []byte("k"), []byte("v")))
	assert.Error(t, p.Publish(ctx, "t", []byte("k"), nil))
}

func TestPublish_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewProducerWithWriter(w, nil)

	err := p.Publish(context.Background(), "t", nil, []byte("v"))
	require.Error(t, err)
	assert.EqualValues(t, 1, p.Failed())
}

func TestPublish_AfterClose(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, nil)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, w.closed)

	assert.Error(t, p.Publish(context.Background(), "t", nil, []byte("v")))
}
