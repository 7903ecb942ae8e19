package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/services"
	"swasthsetu/pkg/middleware"
	"swasthsetu/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a user account and email a verification code
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Account registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, user, "Account created successfully")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate a user and return a bearer token
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Login successful")
}

// Logout godoc
// @Summary Logout
// @Description Revoke the session behind the bearer token
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /api/auth/logout [post]
func (a *AccountController) Logout(c *gin.Context) {
	if err := a.accountService.Logout(c.Request.Context(), c.GetString(middleware.ContextToken)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Logged out")
}

// Me godoc
// @Summary Current user
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/auth/me [get]
func (a *AccountController) Me(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	user, err := a.accountService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, user, "")
}

// VerifyEmail godoc
// @Summary Verify an email address
// @Description Validates the 6-digit code sent at registration
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.VerifyEmailRequest true "Verification payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/auth/verify [post]
func (a *AccountController) VerifyEmail(c *gin.Context) {
	var req request_models.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.VerifyEmail(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Email verified")
}

// ResendVerification godoc
// @Summary Send a new email verification code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RequestForgotPassword true "Email payload"
// @Success 200 {object} utils.APIResponse
// @Router /api/auth/resend-verification [post]
func (a *AccountController) ResendVerification(c *gin.Context) {
	var req request_models.RequestForgotPassword
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "If the account is awaiting verification, a new code has been sent")
}

// ForgotPassword handles the forgot password functionality.
// @Summary Request a password reset
// @Description Sends a password reset token to the provided email if it exists
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.RequestForgotPassword true "Forgot password payload"
// @Success 200 {object} utils.APIResponse
// @Router /api/auth/forgot-password [post]
func (a *AccountController) ForgotPassword(c *gin.Context) {
	var req request_models.RequestForgotPassword
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "If the email exists, a reset link has been sent")
}

// ResetPassword godoc
// @Summary Reset password
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.ResetPasswordRequest true "Reset password payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/auth/reset-password [post]
func (a *AccountController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.ResetPassword(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Password updated")
}
