/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-14 10:48:21
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-14 10:48:21
 * @FilePath: \go-realtime\client\typed.go
 * @Description: 泛型订阅
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"github.com/kamalyes/go-realtime/models"
)

// SubscribeTyped 订阅指定类型消息并将负载解码为 T
// 解码失败的消息记录日志后跳过
func SubscribeTyped[T any](c *Client, messageType string, handler func(payload T, msg *models.Message)) *Subscription {
	if handler == nil {
		return newSubscription(nil)
	}
	return c.Subscribe(messageType, func(msg *models.Message) {
		payload, err := models.DecodePayload[T](msg)
		if err != nil {
			c.malformed.Add(1)
			c.logger.WarnKV("消息负载解码失败", "client_id", c.id, "type", msg.Type, "error", err)
			return
		}
		handler(payload, msg)
	})
}
