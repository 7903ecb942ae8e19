package config_fx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"swasthsetu/internal/config"
	"swasthsetu/internal/logging"
)

var Module = fx.Provide(config.NewConfig, provideLogger)

func provideLogger(cfg *config.Config) logrus.FieldLogger {
	return logging.New(cfg)
}
