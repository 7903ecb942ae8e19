package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"swasthsetu/pkg/middleware"
	"swasthsetu/pkg/utils"
)

// callerID reads the authenticated user id, writing a 401 when absent.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := middleware.CurrentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing")
		return uuid.Nil, false
	}
	return id, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
