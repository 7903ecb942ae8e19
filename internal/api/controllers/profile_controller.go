package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/services"
	"swasthsetu/pkg/utils"
)

type ProfileController struct {
	profileService services.ProfileServiceInterface
}

func NewProfileController(profileService services.ProfileServiceInterface) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetProfile godoc
// @Summary Get the caller's migrant profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/migrant/profile [get]
func (p *ProfileController) GetProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	profile, err := p.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, profile, "")
}

// CreateProfile godoc
// @Summary Create the caller's migrant profile
// @Description Creates the profile and assigns a Health ID
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateProfileRequest true "Profile payload"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/migrant/profile [post]
func (p *ProfileController) CreateProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	profile, err := p.profileService.CreateProfile(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, profile, "Profile created")
}

// UpdateProfile godoc
// @Summary Update the caller's migrant profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/migrant/profile [put]
func (p *ProfileController) UpdateProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	profile, err := p.profileService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, profile, "Profile updated")
}
