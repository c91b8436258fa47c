package handler

import (
	"shorturl-analytics/internal/config"
	"shorturl-analytics/internal/middleware"
	auth "shorturl-analytics/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RouterOptions 构建路由所需的依赖
type RouterOptions struct {
	Links        *ShortLinkHandler
	Auth         *AuthHandler
	TokenManager *auth.TokenManager
	RateLimit    *config.Limit
	Redis        *redis.Client // 可为 nil
	Logger       *zap.Logger
}

// NewRouter 注册全部路由
func NewRouter(opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(middleware.GinZapRecovery(opts.Logger, true))
	router.Use(middleware.GinZapLogger(opts.Logger))
	router.Use(middleware.Metrics())
	if opts.RateLimit != nil {
		router.Use(middleware.RateLimit(opts.Redis, opts.RateLimit))
	}

	router.GET("/health", opts.Links.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/:path", opts.Links.RedirectToOriginal)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", opts.Auth.Login)
		authGroup.POST("/register", opts.Auth.Register)
	}

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(opts.TokenManager))
	{
		api.GET("/me", opts.Auth.GetCurrentUser)
		api.POST("/links", opts.Links.CreateShortLink)
		api.GET("/links", opts.Links.GetAllLinks)
		api.GET("/links/:id", opts.Links.GetLink)
		api.GET("/links/:id/analytics", opts.Links.GetAnalytics)
		api.GET("/links/:id/logs", opts.Links.GetLogs)
		api.GET("/paths/random", opts.Links.RandomPath)
		api.GET("/stats", opts.Links.GetStats)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminMiddleware())
	{
		admin.PUT("/links/:id/toggle", opts.Links.ToggleLink)
		admin.DELETE("/links/:id", opts.Links.DeleteLink)
	}

	return router
}
