/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-16 20:10:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-16 20:10:00
 * @FilePath: \go-realtime\logger.go
 * @Description: go-realtime 日志接口，直接复用 go-logger
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package realtime

import (
	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-realtime/client"
)

// Logger 直接使用 go-logger.ILogger
type Logger = client.Logger

// NewLogger 根据 go-logger 配置创建日志器
func NewLogger(config *logger.LogConfig) Logger {
	return logger.NewLogger(config)
}

// NewDefaultLogger 创建默认配置的日志器
func NewDefaultLogger() Logger {
	return client.NewDefaultLogger()
}

// NewNoOpLogger 创建空日志实例
func NewNoOpLogger() Logger {
	return client.NewNoOpLogger()
}

// 全局日志器
var (
	// DefaultLogger 根包 New 使用的默认日志器
	DefaultLogger Logger = NewDefaultLogger()

	// NoOpLoggerInstance 空日志器实例
	NoOpLoggerInstance Logger = NewNoOpLogger()
)

// SetDefaultLogger 设置默认日志器，只影响之后创建的客户端
func SetDefaultLogger(l Logger) {
	if l == nil {
		l = NoOpLoggerInstance
	}
	DefaultLogger = l
}
