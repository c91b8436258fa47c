package handler

import (
	"net/http"
	"strconv"
	"time"

	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/presenter"
	"shorturl-analytics/internal/service"
	"shorturl-analytics/internal/shortcode"
	"shorturl-analytics/internal/worker"

	"github.com/gin-gonic/gin"
)

// VisitRecorder 异步记录访问
type VisitRecorder interface {
	Record(v worker.Visit) bool
}

// ShortLinkHandler 处理器
type ShortLinkHandler struct {
	links     *service.LinkService
	analytics *service.AnalyticsService
	recorder  VisitRecorder
	baseURL   string
}

// NewShortLinkHandler 创建处理器实例
func NewShortLinkHandler(links *service.LinkService, analytics *service.AnalyticsService, recorder VisitRecorder, baseURL string) *ShortLinkHandler {
	return &ShortLinkHandler{
		links:     links,
		analytics: analytics,
		recorder:  recorder,
		baseURL:   baseURL,
	}
}

// HealthCheck godoc
// @Summary 健康检查
// @Tags System
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *ShortLinkHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// LinkResponse 链接详情
type LinkResponse struct {
	model.ShortLink
	ShortURL string `json:"short_url" example:"http://localhost:8080/black-friday"`
}

func (h *ShortLinkHandler) linkResponse(link model.ShortLink) LinkResponse {
	return LinkResponse{ShortLink: link, ShortURL: presenter.ShortURL(h.baseURL, link.ShortPath)}
}

// CreateShortLink godoc
// @Summary 创建短链接
// @Description 创建短链接，不指定短路径时自动生成
// @Tags ShortLink
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   link  body   service.CreateLinkInput  true  "链接信息"
// @Success 201 {object} LinkResponse "成功响应"
// @Failure 400 {object} ErrorResponse "请求无效"
// @Failure 409 {object} ErrorResponse "短路径已被占用"
// @Failure 500 {object} ErrorResponse "服务器内部错误"
// @Router /api/links [post]
func (h *ShortLinkHandler) CreateShortLink(c *gin.Context) {
	var req service.CreateLinkInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	link, err := h.links.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.linkResponse(*link))
}

// GetAllLinks godoc
// @Summary 链接列表
// @Description 按创建时间倒序返回所有链接，q 按标题、短路径、目标地址搜索
// @Tags ShortLink
// @Security ApiKeyAuth
// @Produce  json
// @Param   q  query  string  false  "搜索关键字"
// @Success 200 {array} LinkResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/links [get]
func (h *ShortLinkHandler) GetAllLinks(c *gin.Context) {
	links, err := h.links.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]LinkResponse, 0, len(links))
	for _, link := range links {
		resp = append(resp, h.linkResponse(link))
	}
	c.JSON(http.StatusOK, resp)
}

// GetLink godoc
// @Summary 链接详情
// @Tags ShortLink
// @Security ApiKeyAuth
// @Produce  json
// @Param   id  path  int  true  "链接 ID"
// @Success 200 {object} LinkResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/links/{id} [get]
func (h *ShortLinkHandler) GetLink(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	link, err := h.links.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.linkResponse(*link))
}

// RandomPath godoc
// @Summary 生成随机短路径
// @Description 返回一个当前未被占用的随机短路径，供创建表单预填
// @Tags ShortLink
// @Security ApiKeyAuth
// @Produce  json
// @Param   length  query  int  false  "长度，默认 6"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /api/paths/random [get]
func (h *ShortLinkHandler) RandomPath(c *gin.Context) {
	length := shortcode.DefaultLength
	if raw := c.Query("length"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, shortcode.ErrInvalidLength)
			return
		}
		length = n
	}
	path, err := h.links.RandomPath(c.Request.Context(), length)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"short_path": path})
}

// GetStats godoc
// @Summary 全局统计
// @Tags ShortLink
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {object} store.Totals
// @Router /api/stats [get]
func (h *ShortLinkHandler) GetStats(c *gin.Context) {
	stats, err := h.links.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ToggleLink godoc
// @Summary 启用或禁用链接
// @Tags Admin
// @Security ApiKeyAuth
// @Produce  json
// @Param   id  path  int  true  "链接 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/links/{id}/toggle [put]
func (h *ShortLinkHandler) ToggleLink(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	active, err := h.links.Toggle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "状态更新成功", "is_active": active})
}

// DeleteLink godoc
// @Summary 删除链接
// @Description 默认保留访问记录，cascade=true 时一并删除
// @Tags Admin
// @Security ApiKeyAuth
// @Produce  json
// @Param   id       path   int   true   "链接 ID"
// @Param   cascade  query  bool  false  "同时删除访问记录"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/links/{id} [delete]
func (h *ShortLinkHandler) DeleteLink(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	cascade, _ := strconv.ParseBool(c.DefaultQuery("cascade", "false"))
	if err := h.links.Delete(c.Request.Context(), id, cascade); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
