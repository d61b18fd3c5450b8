/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 17:10:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-19 11:45:20
 * @FilePath: \go-realtime\client\connection.go
 * @Description: 连接管理逻辑（建连、断线、重连、主动断开）
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kamalyes/go-realtime/models"
)

// Connect 发起连接
// 已连接或拨号进行中时为空操作；拨号在后台完成，结果通过状态通知体现
func (c *Client) Connect() {
	c.startConnect(0, false)
}

// reconnect 重连定时器到期
func (c *Client) reconnect(gen uint64) {
	c.startConnect(gen, true)
}

// startConnect 建连入口，fromTimer 为 true 时要求代数未变化
func (c *Client) startConnect(expectGen uint64, fromTimer bool) {
	c.mu.Lock()
	if fromTimer {
		// 定时器触发前已被 Disconnect 或新的 Connect 取代
		if expectGen != c.gen.Load() || c.closed {
			c.mu.Unlock()
			return
		}
		c.stopReconnect = nil
	}
	if c.closed || c.dialing || c.conn != nil {
		c.mu.Unlock()
		return
	}

	c.cancelReconnectLocked()
	gen := c.gen.Add(1)
	c.status.transition(models.ConnectionStatusConnecting)

	target, err := buildURL(c.cfg.URL, c.token)
	if err != nil {
		// 构造失败与异常关闭走同一条重连路径
		c.status.transition(models.ConnectionStatusError)
		plan := c.planReconnectLocked(gen)
		c.mu.Unlock()
		c.status.drain()
		c.logger.ErrorKV("创建连接失败", "client_id", c.id, "url", c.cfg.URL, "error", err)
		c.logReconnectPlan(plan)
		return
	}

	c.dialing = true
	c.mu.Unlock()
	c.status.drain()

	c.logger.DebugKV("开始连接", "client_id", c.id, "url", c.cfg.URL, "gen", gen)
	go c.dial(gen, target)
}

// dial 拨号并在成功后接管连接
func (c *Client) dial(gen uint64, target string) {
	ctx, cancel := context.WithTimeout(c.ctx, c.cfg.HandshakeTimeout)
	conn, resp, err := c.dialer.Dial(ctx, target, c.cfg.Header)
	cancel()
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	c.mu.Lock()
	if gen != c.gen.Load() || c.closed {
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	c.dialing = false

	if err != nil {
		c.status.transition(models.ConnectionStatusError)
		plan := c.planReconnectLocked(gen)
		c.mu.Unlock()
		c.status.drain()
		c.logger.WarnKV("连接失败", "client_id", c.id, "url", c.cfg.URL, "error", err)
		c.logReconnectPlan(plan)
		return
	}

	c.applyTransportLimits(conn)
	c.conn = conn
	c.attempts = 0
	c.connectedAt = time.Now()
	c.flushing = true
	c.startHeartbeatLocked(gen, conn)
	c.status.transition(models.ConnectionStatusConnected)
	c.mu.Unlock()

	c.logger.InfoKV("连接成功", "client_id", c.id, "url", c.cfg.URL, "subprotocol", conn.Subprotocol())

	go c.readLoop(gen, conn)
	c.status.drain()
	c.flushPending(gen, conn)
}

// applyTransportLimits 应用读限制
func (c *Client) applyTransportLimits(conn Conn) {
	if limit := c.cfg.Transport.MaxMessageSize; limit > 0 {
		conn.SetReadLimit(limit)
	}
}

// readLoop 读取入站消息直到连接关闭
func (c *Client) readLoop(gen uint64, conn Conn) {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			c.handleClose(gen, conn, err)
			return
		}
		if messageType != websocket.TextMessage {
			c.logger.DebugKV("忽略非文本帧", "client_id", c.id, "frame_type", messageType)
			continue
		}
		if c.gen.Load() != gen {
			return
		}
		c.dispatch(data)
	}
}

// dispatch 解析并分发一条入站消息
func (c *Client) dispatch(data []byte) {
	msg, err := models.ParseMessage(data)
	if err != nil {
		c.malformed.Add(1)
		c.logger.WarnKV("解析入站消息失败", "client_id", c.id, "size", len(data), "error", err)
		return
	}

	// pong 为心跳应答，内部消费，不向任何订阅者暴露
	if msg.IsPong() {
		now := time.Now()
		c.mu.Lock()
		c.lastPongAt = now
		c.mu.Unlock()
		return
	}

	c.received.Add(1)
	for _, h := range c.handlers.snapshot(msg.Type) {
		c.invokeMessageHandler(h, msg)
	}
}

// handleClose 处理连接关闭：正常关闭回到 disconnected，异常关闭进入重连评估
func (c *Client) handleClose(gen uint64, conn Conn, err error) {
	code, transportErr := closeCodeOf(err)

	c.mu.Lock()
	if gen != c.gen.Load() || c.conn != conn {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.flushing = false
	c.stopHeartbeatLocked()

	if transportErr {
		c.status.transition(models.ConnectionStatusError)
	}

	if code == models.CloseNormalClosure {
		c.status.transition(models.ConnectionStatusDisconnected)
		c.mu.Unlock()
		_ = conn.Close()
		c.status.drain()
		c.logger.InfoKV("服务端关闭连接", "client_id", c.id, "code", code)
		return
	}

	plan := c.planReconnectLocked(gen)
	c.mu.Unlock()
	_ = conn.Close()
	c.status.drain()

	c.logger.WarnKV("连接异常断开", "client_id", c.id, "code", code, "error", err)
	c.logReconnectPlan(plan)
}

// reconnectPlan 一次重连评估的结果
type reconnectPlan struct {
	scheduled bool
	exhausted bool
	attempt   int
	delay     time.Duration
}

// planReconnectLocked 评估重连策略（需要持有锁）
// 未超过上限时计数加一并调度重试，否则进入 error 且不再自动重试
func (c *Client) planReconnectLocked(gen uint64) reconnectPlan {
	if gen != c.gen.Load() || c.closed {
		return reconnectPlan{}
	}

	if c.attempts >= c.cfg.ReconnectAttempts {
		c.status.transition(models.ConnectionStatusError)
		return reconnectPlan{exhausted: true, attempt: c.attempts}
	}

	c.attempts++
	delay := c.reconnectDelay(c.attempts)
	c.status.transition(models.ConnectionStatusReconnecting)
	c.cancelReconnectLocked()
	c.stopReconnect = c.scheduler.AfterFunc(delay, func() {
		c.reconnect(gen)
	})

	return reconnectPlan{scheduled: true, attempt: c.attempts, delay: delay}
}

// logReconnectPlan 记录重连评估结果
func (c *Client) logReconnectPlan(plan reconnectPlan) {
	switch {
	case plan.scheduled:
		c.logger.InfoKV("计划重连",
			"client_id", c.id,
			"attempt", plan.attempt,
			"max_attempts", c.cfg.ReconnectAttempts,
			"delay", plan.delay.String(),
		)
	case plan.exhausted:
		c.logger.ErrorKV("重连次数耗尽", "client_id", c.id, "attempts", plan.attempt,
			"error", models.ErrReconnectExhausted)
	}
}

// reconnectDelay 第 attempt 次重连的延迟：ReconnectDelay * 1.5^(attempt-1)
func (c *Client) reconnectDelay(attempt int) time.Duration {
	return c.backoff.ForAttempt(float64(attempt - 1))
}

// cancelReconnectLocked 取消已调度的重连（需要持有锁）
func (c *Client) cancelReconnectLocked() {
	if c.stopReconnect != nil {
		c.stopReconnect()
		c.stopReconnect = nil
	}
}

// Disconnect 主动断开
// 取消所有定时器并重置重连计数，以 1000 关闭连接，状态回到 disconnected
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.gen.Add(1)
	c.cancelReconnectLocked()
	c.stopHeartbeatLocked()
	conn := c.conn
	c.conn = nil
	c.dialing = false
	c.flushing = false
	c.attempts = 0
	c.status.transition(models.ConnectionStatusDisconnected)
	c.mu.Unlock()

	if conn != nil {
		c.closeConn(conn)
		c.logger.InfoKV("已主动断开", "client_id", c.id)
	}
	c.status.drain()
}

// closeConn 发送正常关闭帧后关闭底层连接
func (c *Client) closeConn(conn Conn) {
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(models.CloseNormalClosure, models.CloseReasonClientDisconnect)
	if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		c.logger.DebugKV("发送关闭帧失败", "client_id", c.id, "error", err)
	}
	_ = conn.Close()
}

// Close 销毁客户端：断开连接，移除全部订阅，关闭并清空待发送队列
// 之后的 Connect/Send 均为空操作，已返回的订阅句柄仍可安全调用
func (c *Client) Close() {
	c.Disconnect()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.handlers.reset()
	c.status.reset()
	c.pending.Close()
	dropped := c.pending.Clear()
	c.dropped.Add(int64(dropped))
	c.cancel()
	c.logger.InfoKV("客户端已销毁", "client_id", c.id, "dropped_pending", dropped)
}
