package database

import (
	"fmt"

	"shorturl-analytics/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options 数据库连接参数
type Options struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Charset  string
	Silent   bool
}

// Open 按驱动打开连接并迁移表结构
func Open(opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{TranslateError: true}
	if opts.Silent {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	connection, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	if err := Migrate(connection); err != nil {
		return nil, err
	}
	return connection, nil
}

// Migrate 自动迁移全部表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.ShortLink{}, &model.AccessEvent{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case "", "mysql":
		charset := opts.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			opts.User, opts.Password, opts.Host, opts.Port, opts.Name, charset)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			opts.Host, opts.Port, opts.User, opts.Password, opts.Name)
		return postgres.Open(dsn), nil
	case "sqlite":
		name := opts.Name
		if name == "" {
			name = "file::memory:?cache=shared"
		}
		return sqlite.Open(name), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", opts.Driver)
	}
}
