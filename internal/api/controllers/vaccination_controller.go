package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/services"
	"swasthsetu/pkg/utils"
)

type VaccinationController struct {
	vaccinationService services.VaccinationServiceInterface
}

func NewVaccinationController(vaccinationService services.VaccinationServiceInterface) *VaccinationController {
	return &VaccinationController{vaccinationService: vaccinationService}
}

// ListVaccinations godoc
// @Summary List vaccinations
// @Tags Vaccinations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /api/vaccinations [get]
func (v *VaccinationController) ListVaccinations(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	list, err := v.vaccinationService.ListVaccinations(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, list, "")
}

// CreateVaccination godoc
// @Summary Add a vaccination entry
// @Tags Vaccinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateVaccinationRequest true "Vaccination payload"
// @Success 201 {object} utils.APIResponse
// @Router /api/vaccinations [post]
func (v *VaccinationController) CreateVaccination(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.CreateVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	vaccination, err := v.vaccinationService.CreateVaccination(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, vaccination, "Vaccination added")
}

// UpdateVaccination godoc
// @Summary Update a vaccination entry
// @Tags Vaccinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vaccination ID"
// @Param request body request_models.UpdateVaccinationRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/vaccinations/{id} [put]
func (v *VaccinationController) UpdateVaccination(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	vaccination, err := v.vaccinationService.UpdateVaccination(c.Request.Context(), userID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, vaccination, "Vaccination updated")
}
