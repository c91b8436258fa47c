package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config 连接参数，PoolSize 与 Timeout 为零时使用默认值
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

const (
	defaultPoolSize = 20
	defaultTimeout  = 5 * time.Second
)

// options 把配置转换成 go-redis 的连接选项，超时同时用于建连、读写和启动时的 PING
func options(cfg *Config) *redis.Options {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     poolSize,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
}

// NewClient 创建 Redis 客户端；未配置 Host 时返回 nil，调用方按无缓存处理
func NewClient(cfg *Config) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, nil
	}

	opts := options(cfg)
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("Redis连接失败 (%s): %w", opts.Addr, err)
	}

	return rdb, nil
}
