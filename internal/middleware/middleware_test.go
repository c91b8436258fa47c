package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shorturl-analytics/internal/config"
	"shorturl-analytics/internal/model"
	auth "shorturl-analytics/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(ContextUsername)})
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	m := auth.NewManager("secret", "shorturl", 1)
	r := newEngine(AuthMiddleware(m))

	token, err := m.GenerateToken(7, "alice", model.RoleUser)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/ping", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/ping", token).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/ping", "Bearer garbage").Code)

	w := get(r, "/ping", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")

	other := auth.NewManager("other-secret", "shorturl", 1)
	forged, err := other.GenerateToken(7, "alice", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/ping", "Bearer "+forged).Code)
}

func TestAdminMiddleware(t *testing.T) {
	m := auth.NewManager("secret", "shorturl", 1)
	r := newEngine(AuthMiddleware(m), AdminMiddleware())

	userToken, _ := m.GenerateToken(2, "bob", model.RoleUser)
	adminToken, _ := m.GenerateToken(1, "admin", model.RoleAdmin)

	assert.Equal(t, http.StatusForbidden, get(r, "/ping", "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, get(r, "/ping", "Bearer "+adminToken).Code)
}

func TestRateLimit_Local(t *testing.T) {
	r := newEngine(RateLimit(nil, &config.Limit{Enabled: true, Requests: 60, Burst: 2, SkipPaths: []string{"/health"}}))

	assert.Equal(t, http.StatusOK, get(r, "/ping", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ping", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/ping", "").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newEngine(RateLimit(nil, &config.Limit{Enabled: false, Requests: 1, Burst: 1}))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/ping", "").Code)
	}
}

func TestRecoveryAndLogger(t *testing.T) {
	logger := zap.NewNop()
	r := newEngine(GinZapRecovery(logger, true), GinZapLogger(logger), Metrics())

	w := get(r, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")

	assert.Equal(t, http.StatusOK, get(r, "/ping", "").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/missing", "").Code)
}
