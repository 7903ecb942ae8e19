package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/services"
	"swasthsetu/pkg/utils"
)

type SymptomController struct {
	symptomService services.SymptomServiceInterface
}

func NewSymptomController(symptomService services.SymptomServiceInterface) *SymptomController {
	return &SymptomController{symptomService: symptomService}
}

// CheckSymptoms godoc
// @Summary Run a symptom self-check
// @Description Scores fever, cough and fatigue into a risk level and stores the submission
// @Tags Symptoms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.SymptomCheckRequest true "Symptom flags"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/symptoms/check [post]
func (s *SymptomController) CheckSymptoms(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.SymptomCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	symptom, err := s.symptomService.CheckSymptoms(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, symptom, "")
}

// History godoc
// @Summary Past symptom checks
// @Tags Symptoms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /api/symptoms/history [get]
func (s *SymptomController) History(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	history, err := s.symptomService.History(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, history, "")
}
