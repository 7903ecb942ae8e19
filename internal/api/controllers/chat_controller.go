package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/services"
	"swasthsetu/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{chatService: chatService}
}

// Chat godoc
// @Summary Ask the health assistant
// @Description Returns a canned reply picked by keyword
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.ChatRequest true "Message"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/chat [post]
func (ch *ChatController) Chat(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	reply, err := ch.chatService.Reply(req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, reply, "")
}
