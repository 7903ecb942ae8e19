package profile_fx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"swasthsetu/internal/repositories"
	"swasthsetu/internal/services"
)

var Module = fx.Provide(provideProfileRepo, provideProfileService)

func provideProfileRepo(db *gorm.DB) repositories.ProfileRepository {
	return repositories.NewProfileRepository(db)
}

func provideProfileService(profileRepo repositories.ProfileRepository, log logrus.FieldLogger) services.ProfileServiceInterface {
	return services.NewProfileService(profileRepo, log)
}
