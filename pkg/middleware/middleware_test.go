package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swasthsetu/internal/auth"
	"swasthsetu/internal/models/db_models"
	mem "swasthsetu/pkg/memcache"
	"swasthsetu/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProvider() auth.Provider {
	log, _ := test.NewNullLogger()
	return auth.NewProvider(auth.NewTokenIssuer("middleware-secret"), auth.NewMemorySessionStore(mem.NewTokens()), time.Hour, log)
}

func protectedRouter(provider auth.Provider, reached *bool, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(TraceIDMiddleware())
	handlers := append([]gin.HandlerFunc{AuthMiddleware(provider)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		*reached = true
		id, err := CurrentUserID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	r.GET("/private", handlers...)
	return r
}

func issue(t *testing.T, provider auth.Provider, role db_models.Role) (string, uuid.UUID) {
	t.Helper()
	user := &db_models.User{Email: "a@b.c", Role: role}
	user.ID = uuid.New()
	session, err := provider.IssueSession(context.Background(), user)
	require.NoError(t, err)
	return session.Token, user.ID
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	reached := false
	r := protectedRouter(newProvider(), &reached)

	for _, header := range []string{"", "Basic abc", "bearer lower"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Contains(t, w.Body.String(), "Authorization header missing")
	}
	assert.False(t, reached)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	reached := false
	r := protectedRouter(newProvider(), &reached)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
	assert.False(t, reached)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	provider := newProvider()
	token, userID := issue(t, provider, db_models.RoleMigrant)
	reached := false
	r := protectedRouter(provider, &reached)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())
	assert.True(t, reached)
}

func TestRequireRoles(t *testing.T) {
	provider := newProvider()
	migrantToken, _ := issue(t, provider, db_models.RoleMigrant)
	workerToken, _ := issue(t, provider, db_models.RoleHealthWorker)

	reached := false
	r := protectedRouter(provider, &reached, RequireRoles("health_worker", "admin"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+migrantToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, reached)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+workerToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTraceIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Header().Get("X-Trace-ID"))
	require.NoError(t, err)
	assert.Equal(t, w.Header().Get("X-Trace-ID"), w.Body.String())

	incoming := uuid.New().String()
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", incoming)
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Body.String())
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.swasthsetu.in"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.swasthsetu.in")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.swasthsetu.in", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 404, hook.LastEntry().Data["status"])
}

func TestCORSWildcardDoesNotAllowCredentials(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"*"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Empty(t, w.Header().Get("Vary"))
}

func TestCORSListedOriginAllowsCredentials(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.swasthsetu.in/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.swasthsetu.in")
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://app.swasthsetu.in", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestServiceErrorsUseInjectedLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(TraceIDMiddleware(), RequestLogger(log.WithField("application", "swasthsetu-api")))
	r.GET("/boom", func(c *gin.Context) { utils.HandleServiceError(c, errors.New("boom")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "unknown error", entries[0].Message)
	assert.Equal(t, "swasthsetu-api", entries[0].Data["application"])
	assert.NotEmpty(t, entries[0].Data["trace_id"])
	assert.Equal(t, "request failed", entries[1].Message)
}
