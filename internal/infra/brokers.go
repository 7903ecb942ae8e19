package infra

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"swasthsetu/internal/config"
	"swasthsetu/internal/events"
	"swasthsetu/internal/storage"
)

// NewMinIO returns nil, nil when MINIO_ENDPOINT is empty.
func NewMinIO(cfg *config.Config) (*storage.MinIO, error) {
	if cfg.MinIOEndpoint == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return storage.NewMinIO(ctx, cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL)
}

// NewKafkaWriter returns nil when KAFKA_BROKERS is empty.
func NewKafkaWriter(cfg *config.Config) *kafka.Writer {
	brokers := cfg.KafkaBrokerList()
	if len(brokers) == 0 {
		return nil
	}
	return events.NewKafkaWriter(brokers, cfg.KafkaSymptomTopic)
}
