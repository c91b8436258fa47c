package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 主配置结构
type Config struct {
	App       App       `yaml:"app"`
	Server    Server    `yaml:"server"`
	Database  DB        `yaml:"database"`
	Cache     Cache     `yaml:"cache"`
	Auth      Auth      `yaml:"auth"`
	RateLimit Limit     `yaml:"rate_limit"`
	Analytics Analytics `yaml:"analytics"`
	Shortcode Shortcode `yaml:"shortcode"`
}

// 应用配置
type App struct {
	Name    string `yaml:"name"`
	Mode    string `yaml:"mode"`
	Version string `yaml:"version"`
	BaseURL string `yaml:"base_url"` // 生成短链接时使用的对外地址
	LogFile string `yaml:"log_file"` // 为空时只输出到控制台
}

// 服务器配置
type Server struct {
	Port         int `yaml:"port"`
	ReadTimeout  int `yaml:"read_timeout"`
	WriteTimeout int `yaml:"write_timeout"`
}

// 数据库配置
type DB struct {
	Driver   string `yaml:"driver"` // mysql | postgres | sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// 缓存配置（Redis）
type Cache struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTL      int    `yaml:"ttl_hours"`
	PoolSize int    `yaml:"pool_size"`
	Timeout  int    `yaml:"timeout_seconds"` // 连接与读写超时
}

// 认证配置
type Auth struct {
	Secret          string `yaml:"secret"`
	Issuer          string `yaml:"issuer"`
	ExpirationHours int    `yaml:"expiration_hours"`
	AdminPassword   string `yaml:"admin_password"`
}

// 限流配置
type Limit struct {
	Enabled   bool     `yaml:"enabled"`
	Requests  int64    `yaml:"requests_per_minute"`
	Burst     int64    `yaml:"burst"`
	SkipPaths []string `yaml:"skip_paths"`
}

// 访问统计配置
type Analytics struct {
	RecorderBuffer  int    `yaml:"recorder_buffer"`
	RecorderWorkers int    `yaml:"recorder_workers"`
	DefaultPeriod   string `yaml:"default_period"`
	PageSize        int    `yaml:"page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
}

// 短路径配置
type Shortcode struct {
	Length   int `yaml:"length"`
	PoolSize int `yaml:"pool_size"`
}

// 加载配置：先读 .env（可选），再读 yaml，最后用环境变量覆盖敏感项
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("读取 .env 失败: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv 使用 SHORTURL_* 环境变量覆盖配置
func (c *Config) applyEnv() {
	setString(&c.Database.Driver, "SHORTURL_DB_DRIVER")
	setString(&c.Database.Host, "SHORTURL_DB_HOST")
	setInt(&c.Database.Port, "SHORTURL_DB_PORT")
	setString(&c.Database.User, "SHORTURL_DB_USER")
	setString(&c.Database.Password, "SHORTURL_DB_PASSWORD")
	setString(&c.Database.Name, "SHORTURL_DB_NAME")
	setString(&c.Cache.Host, "SHORTURL_REDIS_HOST")
	setString(&c.Cache.Password, "SHORTURL_REDIS_PASSWORD")
	setString(&c.Auth.Secret, "SHORTURL_JWT_SECRET")
	setString(&c.Auth.AdminPassword, "SHORTURL_ADMIN_PASSWORD")
	setString(&c.App.BaseURL, "SHORTURL_BASE_URL")
	setString(&c.App.Mode, "SHORTURL_MODE")
}

func (c *Config) applyDefaults() {
	if c.App.Mode == "" {
		c.App.Mode = "debug"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.App.BaseURL == "" {
		c.App.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Database.Charset == "" {
		c.Database.Charset = "utf8mb4"
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 24
	}
	if c.Cache.PoolSize <= 0 {
		c.Cache.PoolSize = 20
	}
	if c.Cache.Timeout <= 0 {
		c.Cache.Timeout = 5
	}
	if c.Auth.ExpirationHours <= 0 {
		c.Auth.ExpirationHours = 24
	}
	// 生产环境不提供默认管理员密码
	if c.Auth.AdminPassword == "" && !c.IsProduction() {
		c.Auth.AdminPassword = "admin"
	}
	if c.Analytics.RecorderBuffer <= 0 {
		c.Analytics.RecorderBuffer = 1024
	}
	if c.Analytics.RecorderWorkers <= 0 {
		c.Analytics.RecorderWorkers = 2
	}
	if c.Analytics.DefaultPeriod == "" {
		c.Analytics.DefaultPeriod = "30d"
	}
	if c.Analytics.PageSize <= 0 {
		c.Analytics.PageSize = 10
	}
	if c.Analytics.MaxPageSize <= 0 {
		c.Analytics.MaxPageSize = 100
	}
	if c.Shortcode.Length <= 0 {
		c.Shortcode.Length = 6
	}
	if c.Shortcode.PoolSize <= 0 {
		c.Shortcode.PoolSize = 256
	}
}

// IsProduction 是否为生产模式
func (c *Config) IsProduction() bool {
	return c.App.Mode == "production"
}

func (c *Config) validate() error {
	if !c.IsProduction() {
		return nil
	}
	if c.Auth.Secret == "" {
		return errors.New("生产模式必须配置 auth.secret 或 SHORTURL_JWT_SECRET")
	}
	if c.Auth.AdminPassword == "" {
		return errors.New("生产模式必须配置 auth.admin_password 或 SHORTURL_ADMIN_PASSWORD")
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
