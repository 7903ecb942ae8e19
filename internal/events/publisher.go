package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// SymptomChecked is emitted after every persisted symptom self-check.
type SymptomChecked struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	RiskLevel string    `json:"riskLevel"`
	CheckedAt time.Time `json:"checkedAt"`
}

type Publisher interface {
	PublishSymptomChecked(ctx context.Context, event SymptomChecked) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

func NewKafkaPublisher(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// PublishSymptomChecked keys messages by user so one user's checks stay ordered.
func (p *KafkaPublisher) PublishSymptomChecked(ctx context.Context, event SymptomChecked) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: payload,
		Time:  event.CheckedAt,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events; used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishSymptomChecked(context.Context, SymptomChecked) error { return nil }

func (NoopPublisher) Close() error { return nil }
