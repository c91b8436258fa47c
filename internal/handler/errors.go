package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"shorturl-analytics/internal/accesslog"
	"shorturl-analytics/internal/analytics"
	"shorturl-analytics/internal/service"
	"shorturl-analytics/internal/shortcode"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse 统一的错误响应
type ErrorResponse struct {
	Error string `json:"error" example:"链接不存在"`
}

// 参数错误
var (
	errInvalidID   = errors.New("无效的链接 ID")
	errInvalidTime = errors.New("无效的时间格式，应为 YYYY-MM-DD 或 RFC3339")
)

// respondError 按错误类型映射状态码
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, analytics.ErrInvalidWindow),
		errors.Is(err, analytics.ErrWindowTooLong),
		errors.Is(err, analytics.ErrInvalidPeriod),
		errors.Is(err, accesslog.ErrInvalidPageSize),
		errors.Is(err, accesslog.ErrInvalidPageNumber),
		errors.Is(err, shortcode.ErrInvalidLength),
		errors.Is(err, errInvalidID),
		errors.Is(err, errInvalidTime):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrLinkNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "链接不存在"})
	case errors.Is(err, service.ErrPathTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "短路径已被占用"})
	default:
		zap.S().Errorf("%s %s 处理失败: %v", c.Request.Method, c.FullPath(), err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// parseTime 解析查询参数中的时间；endOfDay 为 true 时，纯日期取当天最后一刻
func parseTime(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(analytics.DayLayout, raw)
	if err != nil {
		return time.Time{}, errInvalidTime
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &service.ValidationError{Field: key, Message: "must be an integer"}
	}
	return n, nil
}
