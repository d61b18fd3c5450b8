/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-13 09:15:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-19 11:08:02
 * @FilePath: \go-realtime\client\heartbeat.go
 * @Description: 应用层心跳
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"context"

	"github.com/kamalyes/go-realtime/models"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

// startHeartbeatLocked 启动心跳（需要持有锁）
// 只发送 ping，不校验 pong 是否按时到达，连接存活依赖传输层的关闭/错误信号
func (c *Client) startHeartbeatLocked(gen uint64, conn Conn) {
	c.stopHeartbeatLocked()

	interval := c.cfg.HeartbeatInterval
	if interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(c.ctx)
	c.stopHeartbeat = cancel

	go syncx.NewEventLoop(ctx).
		OnTicker(interval, func() {
			c.sendPing(gen, conn)
		}).
		OnPanic(func(r interface{}) {
			c.logger.ErrorKV("心跳循环 panic", "client_id", c.id, "panic", r)
		}).
		Run()
}

// stopHeartbeatLocked 停止心跳（需要持有锁）
func (c *Client) stopHeartbeatLocked() {
	if c.stopHeartbeat != nil {
		c.stopHeartbeat()
		c.stopHeartbeat = nil
	}
}

// sendPing 发送一次心跳，连接已被替换时跳过
func (c *Client) sendPing(gen uint64, conn Conn) {
	if c.gen.Load() != gen {
		return
	}
	if err := c.write(conn, models.NewPingMessage()); err != nil {
		c.logger.DebugKV("发送心跳失败", "client_id", c.id, "error", err)
		c.handleClose(gen, conn, err)
		return
	}
	c.pings.Add(1)
}
