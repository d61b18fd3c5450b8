/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-14 09:12:40
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-19 11:46:02
 * @FilePath: \go-realtime\models\stats.go
 * @Description: 客户端运行统计
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import "time"

// ClientStats 客户端运行统计快照
type ClientStats struct {
	ClientID          string           `json:"client_id"`
	Status            ConnectionStatus `json:"status"`
	ReconnectAttempts int              `json:"reconnect_attempts"` // 当前连续重连次数
	MessagesSent      int64            `json:"messages_sent"`
	MessagesReceived  int64            `json:"messages_received"`
	MessagesQueued    int64            `json:"messages_queued"`  // 累计进入待发送队列的消息数
	MessagesDropped   int64            `json:"messages_dropped"` // 队列满、编码失败或销毁时未发出的出站消息
	MalformedInbound  int64            `json:"malformed_inbound"`
	PendingMessages   int              `json:"pending_messages"`
	PendingCapacity   int              `json:"pending_capacity"` // 待发送队列当前容量，随积压自动伸缩
	PingsSent         int64            `json:"pings_sent"`
	LastPongAt        time.Time        `json:"last_pong_at"`
	ConnectedAt       time.Time        `json:"connected_at"`
}
