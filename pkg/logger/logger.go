package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger
)

// Options 日志参数
type Options struct {
	Filename string // 为空时只输出到控制台
	Level    zapcore.Level
}

// InitLogger 初始化 zap 日志记录器，并替换全局 logger
func InitLogger(opts Options) {
	core := zapcore.NewCore(getEncoder(), getLogWriter(opts.Filename), opts.Level)

	Logger = zap.New(core, zap.AddCaller())
	Sugar = Logger.Sugar()

	zap.ReplaceGlobals(Logger)
}

// LevelForMode 生产模式只记录 Info 以上
func LevelForMode(mode string) zapcore.Level {
	if mode == "production" {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

// getEncoder 控制台编码，ISO8601 时间，大写带颜色的级别
func getEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// getLogWriter 同时写控制台和按大小切割的日志文件
func getLogWriter(filename string) zapcore.WriteSyncer {
	if filename == "" {
		return zapcore.AddSync(os.Stdout)
	}
	lumberJackLogger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // 天
		Compress:   false,
	}
	return zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(lumberJackLogger))
}
