package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shorturl-analytics/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimit 全局限流中间件。配置了 Redis 时按客户端 IP 做分钟级计数，
// 多个实例共享额度；否则退化为进程内令牌桶。
func RateLimit(redisClient *redis.Client, limitConfig *config.Limit) gin.HandlerFunc {
	if !limitConfig.Enabled || limitConfig.Requests <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	burst := int(limitConfig.Burst)
	if burst <= 0 {
		burst = int(limitConfig.Requests)
	}
	// 令牌桶按分钟额度换算为每秒速率，rate.Limiter 自带锁
	limiter := rate.NewLimiter(rate.Limit(float64(limitConfig.Requests)/60), burst)

	return func(c *gin.Context) {
		// 跳过特定路径
		for _, path := range limitConfig.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		allowed := true
		if redisClient != nil {
			ok, err := allowByRedis(c.Request.Context(), redisClient, c.ClientIP(), limitConfig.Requests)
			if err != nil {
				zap.S().Warnf("Redis 限流失败，使用本地限流: %v", err)
				allowed = limiter.Allow()
			} else {
				allowed = ok
			}
		} else {
			allowed = limiter.Allow()
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "请求过于频繁，请稍后再试",
			})
			return
		}

		c.Next()
	}
}

// allowByRedis 固定窗口计数：同一 IP 每分钟最多 limit 次
func allowByRedis(ctx context.Context, rdb *redis.Client, ip string, limit int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/60)
	pipe := rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= limit, nil
}
