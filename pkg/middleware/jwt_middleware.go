package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"swasthsetu/internal/auth"
	"swasthsetu/pkg/utils"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
	ContextToken  = "token"
)

// AuthMiddleware rejects requests without a bearer token (401) or with one the
// provider does not accept (403). No handler runs for rejected requests.
func AuthMiddleware(provider auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if !strings.HasPrefix(authHeader, "Bearer ") || tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing")
			c.Abort()
			return
		}

		claims, err := provider.Validate(c.Request.Context(), tokenString)
		if err != nil {
			utils.HandleServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}

// RequireRoles must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := allowed[c.GetString(ContextRole)]; !ok {
			utils.HandleServiceError(c, utils.ErrForbiddenRole)
			c.Abort()
			return
		}
		c.Next()
	}
}

var errNoUser = errors.New("no authenticated user in context")

// CurrentUserID returns the id stored by AuthMiddleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetString(ContextUserID)
	if raw == "" {
		return uuid.Nil, errNoUser
	}
	return uuid.Parse(raw)
}
