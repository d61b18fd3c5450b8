/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 18:20:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-19 11:06:37
 * @FilePath: \go-realtime\client\send.go
 * @Description: 消息发送与待发送队列回放
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/kamalyes/go-realtime/models"
)

// Send 发送消息
// 连接可用时直接写出并返回 true；否则进入待发送队列并返回 false，不会 panic
func (c *Client) Send(messageType string, payload any) bool {
	msg, err := models.NewMessage(messageType, payload)
	if err != nil {
		c.dropped.Add(1)
		c.logger.ErrorKV("消息编码失败", "client_id", c.id, "type", messageType, "error", err)
		return false
	}
	return c.SendMessage(msg)
}

// SendMessage 发送已构造的消息，语义同 Send
func (c *Client) SendMessage(msg *models.Message) bool {
	if msg == nil {
		return false
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.dropped.Add(1)
		c.logger.DebugKV("丢弃消息", "client_id", c.id, "type", msg.Type, "error", models.ErrClientClosed)
		return false
	}
	conn, gen := c.conn, c.gen.Load()
	// 回放期间新消息排在队尾，保证 FIFO
	if conn == nil || c.flushing {
		err := c.pending.Push(msg)
		c.mu.Unlock()
		c.recordQueued(msg, err)
		return false
	}
	c.mu.Unlock()

	if err := c.write(conn, msg); err != nil {
		c.logger.WarnKV("消息写出失败，转入待发送队列", "client_id", c.id, "type", msg.Type, "error", err)
		c.recordQueued(msg, c.pending.Push(msg))
		// 写失败视为传输中断，按异常断开处理
		c.handleClose(gen, conn, err)
		return false
	}
	c.sent.Add(1)
	return true
}

// recordQueued 记录入队结果
func (c *Client) recordQueued(msg *models.Message, err error) {
	if err != nil {
		c.dropped.Add(1)
		c.logger.WarnKV("待发送队列拒绝消息", "client_id", c.id, "type", msg.Type, "queue", c.pending.Stats(), "error", err)
		return
	}
	c.queued.Add(1)
}

// write 写出一条文本帧
func (c *Client) write(conn Conn, msg *models.Message) error {
	data, err := msg.Encode()
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if timeout := c.cfg.Transport.WriteTimeout; timeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

// flushPending 按 FIFO 逐条回放待发送队列
// 每次只弹出一条，回放中途队列被清空或连接被替换都能安全退出
func (c *Client) flushPending(gen uint64, conn Conn) {
	flushed := 0
	for {
		c.mu.Lock()
		if gen != c.gen.Load() || c.conn != conn {
			c.mu.Unlock()
			return
		}
		msg, ok := c.pending.TryPop()
		if !ok {
			c.flushing = false
			c.mu.Unlock()
			break
		}
		c.mu.Unlock()

		if err := c.write(conn, msg); err != nil {
			// 放回队首，等待下一次连接
			if pushErr := c.pending.PushFront(msg); pushErr != nil {
				c.dropped.Add(1)
				c.logger.WarnKV("回放失败的消息无法放回队列", "client_id", c.id, "type", msg.Type, "error", pushErr)
			}
			c.logger.WarnKV("回放待发送消息失败", "client_id", c.id, "type", msg.Type, "error", err)
			// 摘下连接并结束回放，随后 readLoop 读到的关闭错误会被忽略
			c.handleClose(gen, conn, err)
			return
		}
		c.sent.Add(1)
		flushed++
	}

	if flushed > 0 {
		c.logger.InfoKV("待发送队列回放完成", "client_id", c.id, "count", flushed)
	}
}
