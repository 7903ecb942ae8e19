package clinic_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"swasthsetu/internal/repositories"
	"swasthsetu/internal/services"
)

var Module = fx.Provide(provideClinicRepo, services.NewClinicService)

func provideClinicRepo(db *gorm.DB) repositories.ClinicRepository {
	return repositories.NewClinicRepository(db)
}
