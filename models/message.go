/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 10:20:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 22:03:51
 * @FilePath: \go-realtime\models\message.go
 * @Description: 消息信封结构（收发双向通用）
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// TimestampLayout 消息时间戳格式（ISO-8601，毫秒精度，UTC）
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// EmptyPayload 空对象负载，心跳消息使用
var EmptyPayload = json.RawMessage(`{}`)

// Message 线上传输的消息信封
// Payload 保留原始 JSON，由订阅方按需解码
type Message struct {
	Type      string          `json:"type"`                // 消息类型（路由键）
	Payload   json.RawMessage `json:"payload"`             // 消息负载
	Timestamp string          `json:"timestamp,omitempty"` // 发送时间
}

// NewMessage 创建带时间戳的消息
func NewMessage(messageType string, payload any) (*Message, error) {
	raw, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Payload:   raw,
		Timestamp: time.Now().UTC().Format(TimestampLayout),
	}, nil
}

// NewPingMessage 创建心跳消息
func NewPingMessage() *Message {
	return &Message{
		Type:      MessageTypePing,
		Payload:   EmptyPayload,
		Timestamp: time.Now().UTC().Format(TimestampLayout),
	}
}

// encodePayload 将负载编码为原始 JSON
func encodePayload(payload any) (json.RawMessage, error) {
	switch v := payload.(type) {
	case json.RawMessage:
		if len(v) == 0 {
			return json.RawMessage(`null`), nil
		}
		return v, nil
	case []byte:
		if !json.Valid(v) {
			return nil, ErrMessageEncode
		}
		return json.RawMessage(v), nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ParseMessage 解析入站文本帧
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, errorx.WrapError(ErrInvalidMessageFormat.Error(), err)
	}
	return &msg, nil
}

// Encode 编码为文本帧
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// IsPong 是否为心跳应答
func (m *Message) IsPong() bool {
	return m.Type == MessageTypePong
}

// Decode 将负载解码到 v
func (m *Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return json.Unmarshal([]byte(`null`), v)
	}
	return json.Unmarshal(m.Payload, v)
}

// Time 解析时间戳，不存在或格式错误时 ok 为 false
func (m *Message) Time() (t time.Time, ok bool) {
	if m.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, m.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DecodePayload 泛型解码负载
func DecodePayload[T any](m *Message) (T, error) {
	var v T
	err := m.Decode(&v)
	return v, err
}
