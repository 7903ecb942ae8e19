package controllers_fx

import (
	"go.uber.org/fx"

	"swasthsetu/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewProfileController),
	fx.Provide(controllers.NewHealthRecordController),
	fx.Provide(controllers.NewVaccinationController),
	fx.Provide(controllers.NewAlertController),
	fx.Provide(controllers.NewSymptomController),
	fx.Provide(controllers.NewClinicController),
	fx.Provide(controllers.NewChatController))
