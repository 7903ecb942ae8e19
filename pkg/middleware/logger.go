package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"swasthsetu/pkg/utils"
)

// RequestLogger writes one structured entry per request and exposes log to
// handlers through utils.RequestLogger.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(utils.ContextLogger, log)
		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"trace_id": c.GetString("trace_id"),
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   status,
			"elapsed":  time.Since(start).String(),
			"client":   c.ClientIP(),
		})
		if userID := c.GetString(ContextUserID); userID != "" {
			entry = entry.WithField("user_id", userID)
		}

		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}
