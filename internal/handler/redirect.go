package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shorturl-analytics/internal/metrics"
	"shorturl-analytics/internal/service"
	"shorturl-analytics/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "sid"
	sessionMaxAge = 30 * 60 // 30 分钟
)

// RedirectToOriginal godoc
// @Summary 短链接跳转
// @Description 302 跳转到目标地址，并异步记录一次访问
// @Tags Redirect
// @Param   path  path  string  true  "短路径"
// @Success 302
// @Failure 404 {object} ErrorResponse "链接不存在或已禁用"
// @Router /{path} [get]
func (h *ShortLinkHandler) RedirectToOriginal(c *gin.Context) {
	path := c.Param("path")
	link, err := h.links.Resolve(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			metrics.Redirects.WithLabelValues("not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": "链接不存在或已禁用"})
			return
		}
		metrics.Redirects.WithLabelValues("error").Inc()
		respondError(c, err)
		return
	}
	metrics.Redirects.WithLabelValues("found").Inc()

	if h.recorder != nil {
		visit := visitFromRequest(c)
		visit.LinkID = link.ID
		visit.LinkCreatedAt = link.CreatedAt
		h.recorder.Record(visit)
	}

	c.Redirect(http.StatusFound, link.DestinationURL)
}

// visitFromRequest 采集请求信息；地理位置来自前置代理写入的请求头
func visitFromRequest(c *gin.Context) worker.Visit {
	v := worker.Visit{
		At:         time.Now(),
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Referrer:   c.Request.Referer(),
		SessionID:  session(c),
		Query:      c.Request.URL.Query(),
		City:       c.GetHeader("X-Geo-City"),
		State:      c.GetHeader("X-Geo-Region"),
		Country:    c.GetHeader("X-Geo-Country"),
		PostalCode: c.GetHeader("X-Geo-Postal-Code"),
		Latitude:   headerFloat(c, "X-Geo-Latitude"),
		Longitude:  headerFloat(c, "X-Geo-Longitude"),
	}
	if v.Country == "" {
		if cc := c.GetHeader("CF-IPCountry"); cc != "" && cc != "XX" {
			v.Country = cc
		}
	}
	return v
}

// session 读取会话 cookie，没有则新建；每次访问刷新过期时间
func session(c *gin.Context) string {
	sid, err := c.Cookie(sessionCookie)
	if err != nil || strings.TrimSpace(sid) == "" {
		sid = uuid.NewString()
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sid, sessionMaxAge, "/", "", c.Request.TLS != nil, true)
	return sid
}

func headerFloat(c *gin.Context, key string) *float64 {
	raw := c.GetHeader(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
