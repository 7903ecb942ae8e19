package alert_fx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"swasthsetu/internal/realtime"
	"swasthsetu/internal/repositories"
	"swasthsetu/internal/services"
)

var Module = fx.Provide(provideAlertRepo, provideAlertService)

func provideAlertRepo(db *gorm.DB) repositories.AlertRepository {
	return repositories.NewAlertRepository(db)
}

func provideAlertService(
	alertRepo repositories.AlertRepository,
	profileRepo repositories.ProfileRepository,
	broadcaster realtime.Broadcaster,
	log logrus.FieldLogger,
) services.AlertServiceInterface {
	return services.NewAlertService(alertRepo, profileRepo, broadcaster, log)
}
