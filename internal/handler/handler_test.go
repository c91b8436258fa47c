package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shorturl-analytics/internal/service"
	"shorturl-analytics/internal/shortcode"
	"shorturl-analytics/internal/store"
	"shorturl-analytics/internal/worker"
	"shorturl-analytics/pkg/database"
	auth "shorturl-analytics/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// syncRecorder 同步写入访问事件，便于断言
type syncRecorder struct {
	events store.EventStore
	links  store.LinkStore
}

func (r *syncRecorder) Record(v worker.Visit) bool {
	event := worker.NewEvent(v)
	ctx := context.Background()
	if err := r.events.Append(ctx, &event); err != nil {
		return false
	}
	return r.links.Touch(ctx, event.LinkID, event.Timestamp) == nil
}

type testEnv struct {
	router     *gin.Engine
	adminToken string
}

// setupTest 为集成测试初始化一个干净的环境，每个测试使用独立的内存数据库
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Open(database.Options{Driver: "sqlite", Name: dsn, Silent: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	logger := zap.NewNop()
	sugar := logger.Sugar()
	links := store.NewGorm(db)

	// 候选池不启动后台填充，Next 会直接现场生成
	pool := shortcode.NewPool(links, shortcode.PoolOptions{}, sugar)
	linkService := service.NewLinkService(links, store.NewCache(nil, 0), pool, sugar)
	analyticsService := service.NewAnalyticsService(links, links, service.AnalyticsOptions{PageSize: 10, MaxPageSize: 50})

	tokenManager := auth.NewManager("test-secret", "shorturl-test", 1)
	created, err := EnsureAdmin(db, "admin")
	require.NoError(t, err)
	require.True(t, created)

	router := NewRouter(RouterOptions{
		Links:        NewShortLinkHandler(linkService, analyticsService, &syncRecorder{events: links, links: links}, "http://sho.rt"),
		Auth:         NewAuthHandler(db, tokenManager),
		TokenManager: tokenManager,
		Logger:       logger,
	})

	env := &testEnv{router: router}
	env.adminToken = env.login(t, "admin", "admin")
	return env
}

func (e *testEnv) do(method, target, token string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	w := e.do(http.MethodPost, "/auth/login", "", LoginRequest{Username: username, Password: password}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) createLink(t *testing.T, in service.CreateLinkInput) LinkResponse {
	t.Helper()
	w := e.do(http.MethodPost, "/api/links", e.adminToken, in, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var link LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))
	return link
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

// TestShortLinkHandler_Integration 测试创建、跳转、统计的完整流程
func TestShortLinkHandler_Integration(t *testing.T) {
	env := setupTest(t)

	// === 步骤 1: 创建短链接 ===
	link := env.createLink(t, service.CreateLinkInput{
		Title:          "Product Documentation",
		DestinationURL: "https://docs.example.com/product/v2",
		ShortPath:      "docs",
	})
	assert.Equal(t, "docs", link.ShortPath)
	assert.Equal(t, "http://sho.rt/docs", link.ShortURL)
	assert.True(t, link.IsActive)

	// === 步骤 2: 访问短链接并验证重定向 ===
	w := env.do(http.MethodGet, "/docs?utm_source=newsletter&utm_campaign=launch", "", nil, map[string]string{
		"User-Agent":    "Mozilla/5.0 (iPhone; CPU iPhone OS 16_6 like Mac OS X) Version/16.6 Mobile/15E148 Safari/604.1",
		"Referer":       "https://www.google.com/search?q=docs",
		"X-Geo-City":    "Berlin",
		"X-Geo-Country": "Germany",
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://docs.example.com/product/v2", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), sessionCookie+"=")

	// === 步骤 3: 查看统计 ===
	w = env.do(http.MethodGet, fmt.Sprintf("/api/links/%d/analytics?period=7d", link.ID), env.adminToken, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stats AnalyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, "Last 7 days", stats.PeriodLabel)
	assert.Equal(t, int64(1), stats.TotalClicks)
	assert.Equal(t, int64(1), stats.PeriodClicks)
	assert.Equal(t, int64(1), stats.UniqueVisitors)
	assert.Len(t, stats.Daily, 7)
	require.Len(t, stats.Referrers, 1)
	assert.Equal(t, "Google", stats.Referrers[0].Name)
	assert.Equal(t, 100, stats.Referrers[0].Percent)
	require.Len(t, stats.Devices, 1)
	assert.Equal(t, "Mobile", stats.Devices[0].Name)
	require.Len(t, stats.Campaigns, 1)
	assert.Equal(t, "launch", stats.Campaigns[0].Name)

	// === 步骤 4: 查看访问日志 ===
	w = env.do(http.MethodGet, fmt.Sprintf("/api/links/%d/logs?page=1&page_size=5", link.ID), env.adminToken, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var logs LogsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	assert.Equal(t, 1, logs.TotalCount)
	assert.Equal(t, 1, logs.TotalPages)
	require.Len(t, logs.Items, 1)
	assert.Equal(t, "Safari", logs.Items[0].Browser)
	assert.Equal(t, "Berlin, Germany", logs.Items[0].Location)
	require.Len(t, logs.Events, 1)
	assert.Equal(t, "newsletter", logs.Events[0].UTMSource)

	w = env.do(http.MethodGet, fmt.Sprintf("/api/links/%d/logs?device=desktop", link.ID), env.adminToken, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	assert.Equal(t, 0, logs.TotalCount)
	assert.Empty(t, logs.Items)
}

func TestCreateShortLink_Errors(t *testing.T) {
	env := setupTest(t)
	env.createLink(t, service.CreateLinkInput{Title: "Help", DestinationURL: "https://support.example.com", ShortPath: "help"})

	w := env.do(http.MethodPost, "/api/links", "", service.CreateLinkInput{Title: "x", DestinationURL: "https://example.com"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/links", env.adminToken, service.CreateLinkInput{Title: "Help again", DestinationURL: "https://example.com", ShortPath: "help"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(http.MethodPost, "/api/links", env.adminToken, service.CreateLinkInput{Title: "Bad", DestinationURL: "not a url"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "destination_url")

	w = env.do(http.MethodPost, "/api/links", env.adminToken, service.CreateLinkInput{Title: "Reserved", DestinationURL: "https://example.com", ShortPath: "metrics"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 不指定短路径时自动生成
	link := env.createLink(t, service.CreateLinkInput{Title: "Generated", DestinationURL: "https://example.com/generated"})
	assert.Len(t, link.ShortPath, shortcode.DefaultLength)
}

func TestAnalyticsAndLogs_BadRequests(t *testing.T) {
	env := setupTest(t)
	link := env.createLink(t, service.CreateLinkInput{Title: "Website", DestinationURL: "https://example.com", ShortPath: "website"})

	cases := []struct {
		target string
		status int
	}{
		{fmt.Sprintf("/api/links/%d/analytics?period=1y", link.ID), http.StatusBadRequest},
		{fmt.Sprintf("/api/links/%d/analytics?from=2023-10-31&to=2023-10-01", link.ID), http.StatusBadRequest},
		{fmt.Sprintf("/api/links/%d/analytics?from=yesterday", link.ID), http.StatusBadRequest},
		{fmt.Sprintf("/api/links/%d/analytics?from=2023-10-01&to=2023-10-31", link.ID), http.StatusOK},
		{fmt.Sprintf("/api/links/%d/analytics?from=0002-01-01&to=2999-12-31", link.ID), http.StatusBadRequest},
		{fmt.Sprintf("/api/links/%d/analytics?from=2022-10-31&to=2023-10-31", link.ID), http.StatusOK},
		{fmt.Sprintf("/api/links/%d/logs?page_size=-1", link.ID), http.StatusBadRequest},
		{fmt.Sprintf("/api/links/%d/logs?page=-2", link.ID), http.StatusBadRequest},
		{fmt.Sprintf("/api/links/%d/logs?page=abc", link.ID), http.StatusBadRequest},
		{fmt.Sprintf("/api/links/%d/logs?referrer=maybe", link.ID), http.StatusBadRequest},
		{fmt.Sprintf("/api/links/%d/logs?page=9", link.ID), http.StatusOK},
		{"/api/links/abc/analytics", http.StatusBadRequest},
		{"/api/links/999/analytics", http.StatusNotFound},
		{"/api/links/999/logs", http.StatusNotFound},
		{"/api/links/999", http.StatusNotFound},
		{"/api/paths/random?length=0", http.StatusBadRequest},
		{"/api/paths/random?length=10", http.StatusOK},
		{"/api/paths/random?length=64", http.StatusOK},
		{"/api/paths/random?length=65", http.StatusBadRequest},
		{"/api/paths/random?length=5000000", http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := env.do(http.MethodGet, tc.target, env.adminToken, nil, nil)
		assert.Equal(t, tc.status, w.Code, "%s: %s", tc.target, w.Body.String())
	}

	w := env.do(http.MethodGet, fmt.Sprintf("/api/links/%d/analytics?from=2023-10-01&to=2023-10-31", link.ID), env.adminToken, nil, nil)
	var stats AnalyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Len(t, stats.Daily, 31)
	assert.Equal(t, "Oct 1", stats.Daily[0].Name)
	assert.Equal(t, "2023-10-01 ~ 2023-10-31", stats.PeriodLabel)
	assert.Empty(t, stats.Browsers)
}

func TestAdminRoutes(t *testing.T) {
	env := setupTest(t)
	link := env.createLink(t, service.CreateLinkInput{Title: "Partners", DestinationURL: "https://example.com/partners", ShortPath: "partners"})

	// 注册普通用户
	w := env.do(http.MethodPost, "/auth/register", "", RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	userToken := env.login(t, "alice", "password123")

	w = env.do(http.MethodGet, "/api/me", userToken, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "PasswordHash")

	toggle := fmt.Sprintf("/api/links/%d/toggle", link.ID)
	w = env.do(http.MethodPut, toggle, userToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPut, toggle, env.adminToken, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_active":false`)

	// 禁用后不再跳转
	w = env.do(http.MethodGet, "/partners", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/api/stats", userToken, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var totals store.Totals
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &totals))
	assert.Equal(t, int64(1), totals.TotalLinks)
	assert.Equal(t, int64(0), totals.ActiveLinks)

	w = env.do(http.MethodDelete, fmt.Sprintf("/api/links/%d?cascade=true", link.ID), env.adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodDelete, fmt.Sprintf("/api/links/%d", link.ID), env.adminToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginFailures(t *testing.T) {
	env := setupTest(t)

	w := env.do(http.MethodPost, "/auth/login", "", LoginRequest{Username: "admin", Password: "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "admin"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/me", "not-a-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/auth/register", "", RegisterRequest{Username: "admin", Email: "x@example.com", Password: "password123"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndRedirectMissing(t *testing.T) {
	env := setupTest(t)

	w := env.do(http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	w = env.do(http.MethodGet, "/nope", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
