package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"client-ledger/config"
	"client-ledger/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_PublishTransaction(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w, topic: "ledger.transactions"}

	occurred := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	event := domain.TransactionEvent{
		ClientID:    3,
		Amount:      500,
		Kind:        domain.TransactionKindDebit,
		Description: "rent",
		Balance:     -500,
		Limit:       1000,
		OccurredAt:  occurred,
	}

	require.NoError(t, p.PublishTransaction(context.Background(), event))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "3", string(msg.Key))
	assert.Equal(t, occurred, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "transaction.applied", string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, float64(3), decoded["client_id"])
	assert.Equal(t, "d", decoded["kind"])
	assert.Equal(t, float64(-500), decoded["balance"])
}

func TestPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("no brokers")}
	p := &Publisher{writer: w, topic: "ledger.transactions"}

	err := p.PublishTransaction(context.Background(), domain.TransactionEvent{ClientID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger.transactions")
}

func TestPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewPublisher_Config(t *testing.T) {
	p := NewPublisher(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "t1"}, zerolog.Nop())

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "t1", w.Topic)
	assert.True(t, w.Async)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
	require.NoError(t, p.Close())
}
