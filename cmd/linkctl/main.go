// linkctl 是短链接服务的运维命令行：初始化演示数据、查看统计、生成随机路径。
package main

import (
	"fmt"
	"os"

	"shorturl-analytics/internal/config"
	"shorturl-analytics/pkg/database"
	"shorturl-analytics/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "linkctl",
	Short: "短链接服务命令行工具",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("配置加载失败: %w", err)
		}
		logger.InitLogger(logger.Options{Level: logger.LevelForMode(cfg.App.Mode)})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger.Logger != nil {
			_ = logger.Logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "配置文件路径")
	rootCmd.AddCommand(seedCmd, statsCmd, pathCmd)
}

// openDB 按配置打开数据库
func openDB() (*gorm.DB, func(), error) {
	db, err := database.Open(database.Options{
		Driver:   cfg.Database.Driver,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		Charset:  cfg.Database.Charset,
		Silent:   true,
	})
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				zap.S().Warnf("关闭数据库失败: %v", err)
			}
		}
	}
	return db, closeFn, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
