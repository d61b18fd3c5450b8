/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 10:35:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-19 10:42:18
 * @FilePath: \go-realtime\models\errors.go
 * @Description: 实时客户端错误定义 - 基于errorx.BaseError模式
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"errors"

	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// ErrorType 错误类型定义，基于errorx.ErrorType
type ErrorType = errorx.ErrorType

// 实时客户端错误码，使用 82xxx 区间
const (
	// 连接相关错误 (82000-82019)
	ErrTypeInvalidURL         ErrorType = 82001 // 无效的连接地址
	ErrTypeConnectionClosed   ErrorType = 82002 // 连接已关闭
	ErrTypeClientClosed       ErrorType = 82003 // 客户端已销毁
	ErrTypeReconnectExhausted ErrorType = 82004 // 重连次数耗尽

	// 消息相关错误 (82020-82039)
	ErrTypeInvalidMessageFormat ErrorType = 82021 // 无效的消息格式
	ErrTypeMessageEncode        ErrorType = 82022 // 消息编码失败
	ErrTypePendingQueueFull     ErrorType = 82023 // 待发送队列已满
	ErrTypePendingQueueClosed   ErrorType = 82024 // 待发送队列已关闭

	// 配置相关错误 (82040-82059)
	ErrTypeConfigValidationFailed ErrorType = 82041 // 配置验证失败
	ErrTypeConfigAutoFixFailed    ErrorType = 82042 // 配置自动修复失败
)

// 预定义错误实例
// 注意：包级变量先于 init 初始化，注册必须与实例化一同在 define 中完成
var (
	ErrInvalidURL             = define(ErrTypeInvalidURL, "invalid websocket url: %s", "invalid websocket url")
	ErrConnectionClosed       = define(ErrTypeConnectionClosed, "connection closed", "")
	ErrClientClosed           = define(ErrTypeClientClosed, "client closed", "")
	ErrReconnectExhausted     = define(ErrTypeReconnectExhausted, "reconnect attempts exhausted after %d tries", "reconnect attempts exhausted")
	ErrInvalidMessageFormat   = define(ErrTypeInvalidMessageFormat, "invalid message format", "")
	ErrMessageEncode          = define(ErrTypeMessageEncode, "message encode failed", "")
	ErrPendingQueueFull       = define(ErrTypePendingQueueFull, "pending queue is full", "")
	ErrPendingQueueClosed     = define(ErrTypePendingQueueClosed, "pending queue is closed", "")
	ErrConfigValidationFailed = define(ErrTypeConfigValidationFailed, "config validation failed: %s", "config validation failed")
	ErrConfigAutoFixFailed    = define(ErrTypeConfigAutoFixFailed, "failed to fix %s: %v", "config auto-fix failed")
)

// define 注册错误模板并返回预定义错误实例
// 模板带占位符时使用 msg 作为实例消息，msg 为空时直接使用模板
func define(errType ErrorType, format, msg string) errorx.BaseError {
	errorx.RegisterError(errType, format)
	if msg == "" {
		msg = format
	}
	return errorx.NewBaseError(msg, errType)
}

// errorTypeOf 提取错误码，支持被包装的错误
func errorTypeOf(err error) (ErrorType, bool) {
	if err == nil {
		return 0, false
	}
	var baseErr errorx.BaseError
	if errors.As(err, &baseErr) {
		return baseErr.GetType(), true
	}
	return 0, false
}

// IsInvalidURLError 判断是否为无效地址错误
func IsInvalidURLError(err error) bool {
	t, ok := errorTypeOf(err)
	return ok && t == ErrTypeInvalidURL
}

// IsConnectionClosedError 判断是否为连接关闭错误
func IsConnectionClosedError(err error) bool {
	t, ok := errorTypeOf(err)
	return ok && (t == ErrTypeConnectionClosed || t == ErrTypeClientClosed)
}

// IsQueueFullError 判断是否为队列已满错误
func IsQueueFullError(err error) bool {
	t, ok := errorTypeOf(err)
	return ok && t == ErrTypePendingQueueFull
}

// IsQueueClosedError 判断是否为队列已关闭错误
func IsQueueClosedError(err error) bool {
	t, ok := errorTypeOf(err)
	return ok && t == ErrTypePendingQueueClosed
}
