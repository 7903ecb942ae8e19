package events_fx

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"swasthsetu/internal/config"
	"swasthsetu/internal/events"
	"swasthsetu/internal/infra"
)

var Module = fx.Provide(providePublisher)

func providePublisher(lc fx.Lifecycle, cfg *config.Config, log logrus.FieldLogger) events.Publisher {
	writer := infra.NewKafkaWriter(cfg)
	if writer == nil {
		log.Info("KAFKA_BROKERS not set, symptom events are not published")
		return events.NoopPublisher{}
	}

	publisher := events.NewKafkaPublisher(writer)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
