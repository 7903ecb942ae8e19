package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ContextLogger is the gin context key under which the request logger
// middleware stores the application's field-tagged logger.
const ContextLogger = "logger"

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

// RequestLogger returns the logger stored by the request logger middleware,
// falling back to the standard logger outside a wired router.
func RequestLogger(c *gin.Context) logrus.FieldLogger {
	if v, ok := c.Get(ContextLogger); ok {
		if l, ok := v.(logrus.FieldLogger); ok {
			return l
		}
	}
	return logrus.StandardLogger()
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusCreated, data, message)
}

func RespondStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		RespondError(c, http.StatusNotFound, "Profile not found")
	case errors.Is(err, ErrRecordNotFound):
		RespondError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, ErrUserNotFound):
		RespondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrProfileAlreadyExists):
		RespondError(c, http.StatusConflict, "Profile already exists")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrInvalidToken):
		RespondError(c, http.StatusForbidden, "Invalid or expired token")
	case errors.Is(err, ErrForbiddenRole):
		RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
	case errors.Is(err, ErrInvalidCode), errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrStorageUnavailable):
		RespondError(c, http.StatusServiceUnavailable, "Document storage is not configured")
	case errors.Is(err, ErrDatabaseError):
		RequestLogger(c).WithError(err).WithField("trace_id", traceID(c)).Error("database error")
		RespondError(c, http.StatusInternalServerError, err.Error())
	default:
		RequestLogger(c).WithError(err).WithField("trace_id", traceID(c)).Error("unknown error")
		RespondError(c, http.StatusInternalServerError, err.Error())
	}
}
