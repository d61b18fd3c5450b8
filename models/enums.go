/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 10:20:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 21:40:12
 * @FilePath: \go-realtime\models\enums.go
 * @Description: 枚举类型定义
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

// ConnectionStatus 连接状态
type ConnectionStatus string

const (
	ConnectionStatusConnecting   ConnectionStatus = "connecting"   // 连接中
	ConnectionStatusConnected    ConnectionStatus = "connected"    // 已连接
	ConnectionStatusDisconnected ConnectionStatus = "disconnected" // 已断开
	ConnectionStatusReconnecting ConnectionStatus = "reconnecting" // 重连中
	ConnectionStatusError        ConnectionStatus = "error"        // 连接错误
)

// String 实现Stringer接口
func (s ConnectionStatus) String() string {
	return string(s)
}

// IsValid 检查连接状态是否有效
func (s ConnectionStatus) IsValid() bool {
	return ConnectionStatusValidator.IsValid(s)
}

// IsActive 是否处于连接周期内（连接中/已连接/重连中）
func (s ConnectionStatus) IsActive() bool {
	switch s {
	case ConnectionStatusConnecting, ConnectionStatusConnected, ConnectionStatusReconnecting:
		return true
	default:
		return false
	}
}

// 保留的消息类型
const (
	MessageTypePing = "ping" // 客户端心跳
	MessageTypePong = "pong" // 服务端心跳应答，客户端内部消费
)

// WebSocket 关闭码
const (
	CloseNormalClosure   = 1000 // 正常关闭（客户端主动断开）
	CloseAbnormalClosure = 1006 // 异常关闭（传输层中断，无关闭帧）

	CloseReasonClientDisconnect = "Client disconnect"
)

// IsReservedMessageType 是否为客户端内部使用的消息类型
func IsReservedMessageType(messageType string) bool {
	return messageType == MessageTypePing || messageType == MessageTypePong
}
