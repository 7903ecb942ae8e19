package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swasthsetu/internal/config"
)

func TestLoggerWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "api.log")

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	Logger(logger, logFile, "swasthsetu-api", "test").Info("hello")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "swasthsetu-api", entry["application"])
	assert.Equal(t, "test", entry["environment"])
}

func TestLoggerAddsFields(t *testing.T) {
	logger, hook := test.NewNullLogger()
	Logger(logger, "", "swasthctl", "local").Warn("careful")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "swasthctl", hook.LastEntry().Data["application"])
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestNewFallsBackToInfo(t *testing.T) {
	entry := New(&config.Config{LogLevel: "chatty", Environment: "test"}).(*logrus.Entry)
	assert.Equal(t, logrus.InfoLevel, entry.Logger.GetLevel())
}
