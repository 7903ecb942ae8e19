package health_fx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"swasthsetu/internal/repositories"
	"swasthsetu/internal/services"
	"swasthsetu/internal/storage"
)

// Module wires health records and vaccinations, which both hang off the migrant profile.
var Module = fx.Provide(
	provideHealthRecordRepo, provideVaccinationRepo,
	provideHealthRecordService, provideVaccinationService,
)

func provideHealthRecordRepo(db *gorm.DB) repositories.HealthRecordRepository {
	return repositories.NewHealthRecordRepository(db)
}

func provideVaccinationRepo(db *gorm.DB) repositories.VaccinationRepository {
	return repositories.NewVaccinationRepository(db)
}

func provideHealthRecordService(
	recordRepo repositories.HealthRecordRepository,
	profileRepo repositories.ProfileRepository,
	documents storage.DocumentStore,
	log logrus.FieldLogger,
) services.HealthRecordServiceInterface {
	return services.NewHealthRecordService(recordRepo, profileRepo, documents, log)
}

func provideVaccinationService(
	vaccinationRepo repositories.VaccinationRepository,
	profileRepo repositories.ProfileRepository,
) services.VaccinationServiceInterface {
	return services.NewVaccinationService(vaccinationRepo, profileRepo)
}
