package logging

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"swasthsetu/internal/config"
)

// Logger points logger at outputFile when it can be opened and tags every
// entry with the application and environment.
func Logger(logger *logrus.Logger, outputFile string,
	application, environment string) logrus.FieldLogger {

	if outputFile != "" {
		if file, err := os.OpenFile(filepath.Clean(outputFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640); err == nil {
			logger.SetOutput(file)
		} else {
			logger.Infof("Failed to open output file %s. Will use stderr. %s",
				outputFile, err.Error())
		}
	}

	return logger.WithFields(logrus.Fields{
		"application": application,
		"environment": environment})
}

func New(cfg *config.Config) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return Logger(logger, cfg.LogFile, "swasthsetu-api", cfg.Environment)
}
