package middleware

import (
	"strconv"
	"time"

	"shorturl-analytics/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 记录请求数与耗时，route 取路由模板而不是实际路径
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
