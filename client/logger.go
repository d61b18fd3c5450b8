/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 11:40:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 00:18:30
 * @FilePath: \go-realtime\client\logger.go
 * @Description: 客户端日志器，直接复用 go-logger
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"os"
	"time"

	wscconfig "github.com/kamalyes/go-config/pkg/wsc"
	"github.com/kamalyes/go-logger"
)

// Logger 直接使用 go-logger.ILogger
type Logger = logger.ILogger

// LogPrefix 日志前缀
const LogPrefix = "[REALTIME] "

// NewDefaultLogger 创建默认配置的日志器
func NewDefaultLogger() Logger {
	config := logger.DefaultConfig().
		WithLevel(logger.INFO).
		WithPrefix(LogPrefix).
		WithShowCaller(false).
		WithColorful(true).
		WithTimeFormat(time.DateTime)

	return logger.NewLogger(config)
}

// NewNoOpLogger 创建空日志实例
func NewNoOpLogger() Logger {
	return logger.NewEmptyLogger()
}

// initLogger 根据传输层日志配置初始化日志器
func initLogger(config *wscconfig.WSC) Logger {
	if config == nil || config.Logging == nil || !config.Logging.Enabled {
		return NewDefaultLogger()
	}

	loggerConfig := logger.DefaultConfig().
		WithLevel(parseLogLevel(config.Logging.Level)).
		WithPrefix(LogPrefix).
		WithShowCaller(false).
		WithColorful(true).
		WithTimeFormat(time.DateTime)

	switch config.Logging.Output {
	case "file":
		if config.Logging.FilePath == "" {
			break
		}
		if config.Logging.MaxSize > 0 && config.Logging.MaxBackups > 0 {
			rotateWriter := logger.NewRotateWriter(
				config.Logging.FilePath,
				int64(config.Logging.MaxSize)*1024*1024, // MB 转字节
				config.Logging.MaxBackups,
			)
			loggerConfig = loggerConfig.WithOutput(rotateWriter)
		} else {
			loggerConfig = loggerConfig.WithOutput(logger.NewFileWriter(config.Logging.FilePath))
		}
	default:
		loggerConfig = loggerConfig.WithOutput(logger.NewConsoleWriter(os.Stdout))
	}

	return logger.NewLogger(loggerConfig)
}

// parseLogLevel 解析日志级别字符串
func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug", "DEBUG":
		return logger.DEBUG
	case "info", "INFO":
		return logger.INFO
	case "warn", "WARN", "warning", "WARNING":
		return logger.WARN
	case "error", "ERROR":
		return logger.ERROR
	case "fatal", "FATAL":
		return logger.FATAL
	default:
		return logger.INFO
	}
}
