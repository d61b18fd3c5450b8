/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-16 20:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 23:20:41
 * @FilePath: \go-realtime\exports_client.go
 * @Description: Client 包的类型和函数导出
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package realtime

import (
	"github.com/kamalyes/go-realtime/client"
	"github.com/kamalyes/go-realtime/models"
)

// ============================================================================
// Client 类型导出
// ============================================================================

type (
	Client         = client.Client
	Config         = client.Config
	Option         = client.Option
	Subscription   = client.Subscription
	MessageHandler = client.MessageHandler
	StatusHandler  = client.StatusHandler
)

// ============================================================================
// 传输层与调度导出
// ============================================================================

type (
	Conn          = client.Conn
	Dialer        = client.Dialer
	DialerFunc    = client.DialerFunc
	GorillaDialer = client.GorillaDialer
	Scheduler     = client.Scheduler
)

// ============================================================================
// 配置验证导出
// ============================================================================

type (
	ConfigValidator  = client.ConfigValidator
	ValidationRule   = client.ValidationRule
	ValidationResult = client.ValidationResult
	ValidationLevel  = client.ValidationLevel
)

const (
	ValidationLevelInfo     = client.ValidationLevelInfo
	ValidationLevelWarning  = client.ValidationLevelWarning
	ValidationLevelError    = client.ValidationLevelError
	ValidationLevelCritical = client.ValidationLevelCritical
)

// ============================================================================
// 配置常量导出
// ============================================================================

const (
	EnvURL                    = client.EnvURL
	DefaultURL                = client.DefaultURL
	DefaultReconnectAttempts  = client.DefaultReconnectAttempts
	DefaultReconnectDelay     = client.DefaultReconnectDelay
	DefaultHeartbeatInterval  = client.DefaultHeartbeatInterval
	DefaultHandshakeTimeout   = client.DefaultHandshakeTimeout
	DefaultMaxPendingMessages = client.DefaultMaxPendingMessages
	ReconnectFactor           = client.ReconnectFactor
	TokenQueryParam           = client.TokenQueryParam
)

// ============================================================================
// Client 函数导出
// ============================================================================

var (
	DefaultConfig      = client.DefaultConfig
	WithLogger         = client.WithLogger
	WithDialer         = client.WithDialer
	WithScheduler      = client.WithScheduler
	NewGorillaDialer   = client.NewGorillaDialer
	NewConfigValidator = client.NewConfigValidator
	HasBlocking        = client.HasBlocking
	IsNormalClose      = client.IsNormalClose
)

// New 创建客户端，默认使用 DefaultLogger，opts 中的 WithLogger 优先
func New(cfg *Config, opts ...Option) *Client {
	return client.New(cfg, append([]Option{client.WithLogger(DefaultLogger)}, opts...)...)
}

// SubscribeTyped 订阅指定类型消息并将负载解码为 T
func SubscribeTyped[T any](c *Client, messageType string, handler func(payload T, msg *models.Message)) *Subscription {
	return client.SubscribeTyped(c, messageType, handler)
}
