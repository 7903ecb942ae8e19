package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherWritesKeyedMessage(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w)
	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	err := p.PublishSymptomChecked(context.Background(), SymptomChecked{
		ID: "s-1", UserID: "u-1", RiskLevel: "high", CheckedAt: at,
	})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "u-1", string(msg.Key))
	assert.Equal(t, at, msg.Time)

	var got SymptomChecked
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "high", got.RiskLevel)
	assert.Equal(t, "s-1", got.ID)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"kafka:9092"}, "symptom-checks")
	assert.Equal(t, "symptom-checks", w.Topic)
	assert.Equal(t, "kafka:9092", w.Addr.String())
}
