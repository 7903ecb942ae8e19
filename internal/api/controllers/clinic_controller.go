package controllers

import (
	"github.com/gin-gonic/gin"

	"swasthsetu/internal/services"
	"swasthsetu/pkg/utils"
)

type ClinicController struct {
	clinicService services.ClinicServiceInterface
}

func NewClinicController(clinicService services.ClinicServiceInterface) *ClinicController {
	return &ClinicController{clinicService: clinicService}
}

// ListClinics godoc
// @Summary List clinics
// @Description Public; filters by location across name, address, district, city and state
// @Tags Clinics
// @Produce json
// @Param location query string false "Location filter"
// @Success 200 {object} utils.APIResponse
// @Router /api/clinics [get]
func (cl *ClinicController) ListClinics(c *gin.Context) {
	clinics, err := cl.clinicService.ListClinics(c.Request.Context(), c.Query("location"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, clinics, "")
}
