package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "shorturl-analytics/docs"
	"shorturl-analytics/internal/analytics"
	"shorturl-analytics/internal/config"
	"shorturl-analytics/internal/handler"
	"shorturl-analytics/internal/service"
	"shorturl-analytics/internal/shortcode"
	"shorturl-analytics/internal/store"
	"shorturl-analytics/internal/worker"
	"shorturl-analytics/pkg/database"
	auth "shorturl-analytics/pkg/jwt"
	"shorturl-analytics/pkg/logger"
	"shorturl-analytics/pkg/redis"

	"github.com/gin-gonic/gin"
	redisClient "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title           短链接访问分析 API
// @version         1.0
// @description     短链接管理、跳转与访问统计服务
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	configPath := "configs/config.yaml"
	if p := os.Getenv("SHORTURL_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Println("配置加载失败:", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.Options{Filename: cfg.App.LogFile, Level: logger.LevelForMode(cfg.App.Mode)})
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zap.S()

	db, err := database.Open(database.Options{
		Driver:   cfg.Database.Driver,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		Charset:  cfg.Database.Charset,
		Silent:   cfg.IsProduction(),
	})
	if err != nil {
		sugaredLogger.Fatalf("数据库初始化失败: %v", err)
	}
	sugaredLogger.Infof("✅ 数据库连接成功 (%s)", cfg.Database.Driver)

	var rdb *redisClient.Client
	rdb, err = redis.NewClient(&redis.Config{
		Host:     cfg.Cache.Host,
		Port:     cfg.Cache.Port,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
		PoolSize: cfg.Cache.PoolSize,
		Timeout:  time.Duration(cfg.Cache.Timeout) * time.Second,
	})
	if err != nil {
		sugaredLogger.Warnf("缓存连接失败，以无缓存模式运行: %v", err)
	} else if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
			}
		}()
		sugaredLogger.Info("✅ 缓存连接成功")
	}

	links := store.NewGorm(db)
	cache := store.NewCache(rdb, time.Duration(cfg.Cache.TTL)*time.Hour)

	// 初始化并启动短路径候选池
	pool := shortcode.NewPool(links, shortcode.PoolOptions{Length: cfg.Shortcode.Length, Size: cfg.Shortcode.PoolSize}, sugaredLogger)
	pool.Start()
	defer pool.Stop()
	sugaredLogger.Info("✅ 短路径候选池已启动")

	recorder := worker.NewRecorder(links, links, cfg.Analytics.RecorderBuffer, cfg.Analytics.RecorderWorkers, sugaredLogger)
	recorder.Start()
	sugaredLogger.Info("✅ 访问记录器已启动")

	period, err := analytics.ParsePeriod(cfg.Analytics.DefaultPeriod)
	if err != nil {
		sugaredLogger.Fatalf("默认统计周期无效: %v", err)
	}
	linkService := service.NewLinkService(links, cache, pool, sugaredLogger)
	analyticsService := service.NewAnalyticsService(links, links, service.AnalyticsOptions{
		DefaultPeriod: period,
		PageSize:      cfg.Analytics.PageSize,
		MaxPageSize:   cfg.Analytics.MaxPageSize,
	})

	tokenManager := auth.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.ExpirationHours)
	sugaredLogger.Info("✅ 认证管理器初始化成功")

	if created, err := handler.EnsureAdmin(db, cfg.Auth.AdminPassword); err != nil {
		sugaredLogger.Errorf("创建管理员失败: %v", err)
	} else if created {
		sugaredLogger.Infow("✅ 默认管理员创建成功", "username", "admin")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.RouterOptions{
		Links:        handler.NewShortLinkHandler(linkService, analyticsService, recorder, cfg.App.BaseURL),
		Auth:         handler.NewAuthHandler(db, tokenManager),
		TokenManager: tokenManager,
		RateLimit:    &cfg.RateLimit,
		Redis:        rdb,
		Logger:       logger.Logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
		sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugaredLogger.Fatalf("服务启动失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugaredLogger.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		sugaredLogger.Errorf("服务关闭失败: %v", err)
	}
	// 先停 HTTP 再停记录器，保证已接收的访问都能落库
	recorder.Stop()
	sugaredLogger.Info("服务已退出")
}
