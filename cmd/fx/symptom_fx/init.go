package symptom_fx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"swasthsetu/internal/events"
	"swasthsetu/internal/repositories"
	"swasthsetu/internal/services"
)

var Module = fx.Provide(provideSymptomRepo, provideSymptomService)

func provideSymptomRepo(db *gorm.DB) repositories.SymptomRepository {
	return repositories.NewSymptomRepository(db)
}

func provideSymptomService(
	symptomRepo repositories.SymptomRepository,
	publisher events.Publisher,
	log logrus.FieldLogger,
) services.SymptomServiceInterface {
	return services.NewSymptomService(symptomRepo, publisher, log)
}
