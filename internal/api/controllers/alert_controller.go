package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/services"
	"swasthsetu/pkg/utils"
)

type AlertController struct {
	alertService services.AlertServiceInterface
	keepAlive    time.Duration
}

func NewAlertController(alertService services.AlertServiceInterface) *AlertController {
	return &AlertController{alertService: alertService, keepAlive: 25 * time.Second}
}

// ListAlerts godoc
// @Summary List alerts
// @Description Global alerts plus the caller's own, newest first
// @Tags Alerts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /api/alerts [get]
func (a *AlertController) ListAlerts(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	alerts, err := a.alertService.ListAlerts(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, alerts, "")
}

// MarkRead godoc
// @Summary Mark an alert as read
// @Tags Alerts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/alerts/{id}/read [put]
func (a *AlertController) MarkRead(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	alertID, ok := pathID(c, "id")
	if !ok {
		return
	}

	alert, err := a.alertService.MarkRead(c.Request.Context(), userID, alertID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, alert, "")
}

// CreateAlert godoc
// @Summary Broadcast an alert
// @Description Health workers, officers and admins create global or migrant-scoped alerts
// @Tags Alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateAlertRequest true "Alert payload"
// @Success 201 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /api/alerts [post]
func (a *AlertController) CreateAlert(c *gin.Context) {
	var req request_models.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	alert, err := a.alertService.CreateAlert(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, alert, "Alert created")
}

// Stream godoc
// @Summary Stream alerts
// @Description Server-Sent Events; starts with the newest visible alert, then a slow client only receives the newest one
// @Tags Alerts
// @Produce text/event-stream
// @Security BearerAuth
// @Router /api/alerts/stream [get]
func (a *AlertController) Stream(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	sub, err := a.alertService.Subscribe(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	defer sub.Close()

	// subscribed first so nothing created in between is missed
	latest, err := a.alertService.LatestAlert(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	ticker := time.NewTicker(a.keepAlive)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	if latest != nil {
		c.SSEvent("alert", latest)
		c.Writer.Flush()
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case alert := <-sub.C():
			c.SSEvent("alert", alert)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-sub.Done():
			return false
		}
	})
}
