/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-16 20:05:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 20:15:33
 * @FilePath: \go-realtime\exports_models.go
 * @Description: Models 包的类型和函数导出
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package realtime

import (
	"github.com/kamalyes/go-realtime/models"
	"github.com/kamalyes/go-realtime/queue"
)

// ==================== 基础类型 ====================
type (
	Message          = models.Message
	ClientStats      = models.ClientStats
	ConnectionStatus = models.ConnectionStatus
	ErrorType        = models.ErrorType
	PendingQueue     = queue.PendingQueue
)

// ==================== 枚举常量 - ConnectionStatus ====================
const (
	ConnectionStatusConnecting   = models.ConnectionStatusConnecting
	ConnectionStatusConnected    = models.ConnectionStatusConnected
	ConnectionStatusDisconnected = models.ConnectionStatusDisconnected
	ConnectionStatusReconnecting = models.ConnectionStatusReconnecting
	ConnectionStatusError        = models.ConnectionStatusError
)

// ==================== 保留消息类型与关闭码 ====================
const (
	MessageTypePing             = models.MessageTypePing
	MessageTypePong             = models.MessageTypePong
	CloseNormalClosure          = models.CloseNormalClosure
	CloseAbnormalClosure        = models.CloseAbnormalClosure
	CloseReasonClientDisconnect = models.CloseReasonClientDisconnect
	TimestampLayout             = models.TimestampLayout
)

// ==================== 错误码 ====================
const (
	ErrTypeInvalidURL             = models.ErrTypeInvalidURL
	ErrTypeConnectionClosed       = models.ErrTypeConnectionClosed
	ErrTypeClientClosed           = models.ErrTypeClientClosed
	ErrTypeReconnectExhausted     = models.ErrTypeReconnectExhausted
	ErrTypeInvalidMessageFormat   = models.ErrTypeInvalidMessageFormat
	ErrTypeMessageEncode          = models.ErrTypeMessageEncode
	ErrTypePendingQueueFull       = models.ErrTypePendingQueueFull
	ErrTypePendingQueueClosed     = models.ErrTypePendingQueueClosed
	ErrTypeConfigValidationFailed = models.ErrTypeConfigValidationFailed
	ErrTypeConfigAutoFixFailed    = models.ErrTypeConfigAutoFixFailed
)

// ==================== 预定义错误 ====================
var (
	ErrInvalidURL             = models.ErrInvalidURL
	ErrConnectionClosed       = models.ErrConnectionClosed
	ErrClientClosed           = models.ErrClientClosed
	ErrReconnectExhausted     = models.ErrReconnectExhausted
	ErrInvalidMessageFormat   = models.ErrInvalidMessageFormat
	ErrMessageEncode          = models.ErrMessageEncode
	ErrPendingQueueFull       = models.ErrPendingQueueFull
	ErrPendingQueueClosed     = models.ErrPendingQueueClosed
	ErrConfigValidationFailed = models.ErrConfigValidationFailed
	ErrConfigAutoFixFailed    = models.ErrConfigAutoFixFailed
)

// ==================== 函数 ====================
var (
	NewMessage              = models.NewMessage
	NewPingMessage          = models.NewPingMessage
	ParseMessage            = models.ParseMessage
	IsReservedMessageType   = models.IsReservedMessageType
	IsInvalidURLError       = models.IsInvalidURLError
	IsConnectionClosedError = models.IsConnectionClosedError
	IsQueueFullError        = models.IsQueueFullError
	IsQueueClosedError      = models.IsQueueClosedError
	NewPendingQueue         = queue.NewPendingQueue
)

// DecodePayload 泛型解码消息负载
func DecodePayload[T any](m *Message) (T, error) {
	return models.DecodePayload[T](m)
}
