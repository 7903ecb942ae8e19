package storage_fx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"swasthsetu/internal/config"
	"swasthsetu/internal/infra"
	"swasthsetu/internal/storage"
)

var Module = fx.Provide(provideDocumentStore)

// provideDocumentStore yields a nil interface when MinIO is not configured.
func provideDocumentStore(cfg *config.Config, log logrus.FieldLogger) (storage.DocumentStore, error) {
	store, err := infra.NewMinIO(cfg)
	if err != nil {
		return nil, err
	}
	if store == nil {
		log.Warn("MINIO_ENDPOINT not set, document uploads are disabled")
		return nil, nil
	}
	return store, nil
}
