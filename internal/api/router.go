package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"swasthsetu/internal/api/controllers"
	"swasthsetu/internal/auth"
	"swasthsetu/internal/models/db_models"
	"swasthsetu/pkg/middleware"
)

type Controllers struct {
	fx.In

	Account      *controllers.AccountController
	Profile      *controllers.ProfileController
	HealthRecord *controllers.HealthRecordController
	Vaccination  *controllers.VaccinationController
	Alert        *controllers.AlertController
	Symptom      *controllers.SymptomController
	Clinic       *controllers.ClinicController
	Chat         *controllers.ChatController
}

func RegisterRoutes(r *gin.Engine, provider auth.Provider, ctl Controllers) {
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	authed := middleware.AuthMiddleware(provider)
	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", ctl.Account.Register)
	authGroup.POST("/login", ctl.Account.Login)
	authGroup.POST("/verify", ctl.Account.VerifyEmail)
	authGroup.POST("/resend-verification", ctl.Account.ResendVerification)
	authGroup.POST("/forgot-password", ctl.Account.ForgotPassword)
	authGroup.POST("/reset-password", ctl.Account.ResetPassword)
	authGroup.POST("/logout", authed, ctl.Account.Logout)
	authGroup.GET("/me", authed, ctl.Account.Me)

	apiGroup.GET("/clinics", ctl.Clinic.ListClinics)

	profileGroup := apiGroup.Group("/migrant/profile", authed)
	profileGroup.GET("", ctl.Profile.GetProfile)
	profileGroup.POST("", ctl.Profile.CreateProfile)
	profileGroup.PUT("", ctl.Profile.UpdateProfile)

	recordsGroup := apiGroup.Group("/health/records", authed)
	recordsGroup.GET("", ctl.HealthRecord.ListRecords)
	recordsGroup.POST("", ctl.HealthRecord.CreateRecord)
	recordsGroup.POST("/upload", ctl.HealthRecord.UploadDocument)
	recordsGroup.GET("/:id/document", ctl.HealthRecord.DocumentLink)

	vaccinationGroup := apiGroup.Group("/vaccinations", authed)
	vaccinationGroup.GET("", ctl.Vaccination.ListVaccinations)
	vaccinationGroup.POST("", ctl.Vaccination.CreateVaccination)
	vaccinationGroup.PUT("/:id", ctl.Vaccination.UpdateVaccination)

	alertGroup := apiGroup.Group("/alerts", authed)
	alertGroup.GET("", ctl.Alert.ListAlerts)
	alertGroup.GET("/stream", ctl.Alert.Stream)
	alertGroup.PUT("/:id/read", ctl.Alert.MarkRead)
	alertGroup.POST("",
		middleware.RequireRoles(string(db_models.RoleHealthWorker), string(db_models.RoleOfficer), string(db_models.RoleAdmin)),
		ctl.Alert.CreateAlert)

	symptomGroup := apiGroup.Group("/symptoms", authed)
	symptomGroup.POST("/check", ctl.Symptom.CheckSymptoms)
	symptomGroup.GET("/history", ctl.Symptom.History)

	apiGroup.POST("/chat", authed, ctl.Chat.Chat)
}
