/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 11:05:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-19 12:02:11
 * @FilePath: \go-realtime\client\config.go
 * @Description: Config 结构体
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"net/http"
	"os"
	"time"

	wscconfig "github.com/kamalyes/go-config/pkg/wsc"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
	"github.com/kamalyes/go-toolbox/pkg/safe"
)

const (
	// EnvURL 默认连接地址的环境变量
	EnvURL = "REALTIME_WS_URL"
	// DefaultURL 未配置环境变量时的连接地址
	DefaultURL = "ws://localhost:8000/ws"

	DefaultReconnectAttempts  = 5
	DefaultReconnectDelay     = 3 * time.Second
	DefaultHeartbeatInterval  = 30 * time.Second
	DefaultHandshakeTimeout   = 10 * time.Second
	DefaultMaxPendingMessages = 100000

	// ReconnectFactor 重连退避倍数
	ReconnectFactor = 1.5
)

// Config 结构体表示实时客户端的配置
// 零值字段按字面含义生效：ReconnectAttempts 为 0 即不自动重连，HeartbeatInterval 为 0 即关闭心跳，
// 需要默认行为时应从 DefaultConfig() 开始修改
type Config struct {
	URL                string         // 连接地址
	ReconnectAttempts  int            // 最大连续重连次数，0 表示不自动重连
	ReconnectDelay     time.Duration  // 重连基础延迟
	MaxReconnectDelay  time.Duration  // 单次重连延迟上限，0 表示不限
	HeartbeatInterval  time.Duration  // 心跳间隔，0 表示关闭
	HandshakeTimeout   time.Duration  // 握手超时
	MaxPendingMessages int            // 待发送队列上限
	Protocols          []string       // 子协议
	Header             http.Header    // 握手附加请求头
	Transport          *wscconfig.WSC // 传输层参数（写超时/读限制/缓冲/日志）
}

// DefaultConfig 创建默认配置，URL 取自环境变量
func DefaultConfig() *Config {
	envURL := os.Getenv(EnvURL)
	return &Config{
		URL:                mathx.IF(envURL != "", envURL, DefaultURL),
		ReconnectAttempts:  DefaultReconnectAttempts,
		ReconnectDelay:     DefaultReconnectDelay,
		HeartbeatInterval:  DefaultHeartbeatInterval,
		HandshakeTimeout:   DefaultHandshakeTimeout,
		MaxPendingMessages: DefaultMaxPendingMessages,
		Transport:          safe.MergeWithDefaults[wscconfig.WSC](nil, wscconfig.Default()),
	}
}

// WithURL 设置连接地址并返回当前配置对象
func (c *Config) WithURL(url string) *Config {
	c.URL = url
	return c
}

// WithReconnectAttempts 设置最大重连次数并返回当前配置对象
func (c *Config) WithReconnectAttempts(n int) *Config {
	c.ReconnectAttempts = n
	return c
}

// WithReconnectDelay 设置重连基础延迟并返回当前配置对象
func (c *Config) WithReconnectDelay(d time.Duration) *Config {
	c.ReconnectDelay = d
	return c
}

// WithMaxReconnectDelay 设置重连延迟上限并返回当前配置对象
func (c *Config) WithMaxReconnectDelay(d time.Duration) *Config {
	c.MaxReconnectDelay = d
	return c
}

// WithHeartbeatInterval 设置心跳间隔并返回当前配置对象
func (c *Config) WithHeartbeatInterval(d time.Duration) *Config {
	c.HeartbeatInterval = d
	return c
}

// WithHandshakeTimeout 设置握手超时并返回当前配置对象
func (c *Config) WithHandshakeTimeout(d time.Duration) *Config {
	c.HandshakeTimeout = d
	return c
}

// WithMaxPendingMessages 设置待发送队列上限并返回当前配置对象
func (c *Config) WithMaxPendingMessages(n int) *Config {
	c.MaxPendingMessages = n
	return c
}

// WithProtocols 设置子协议并返回当前配置对象
func (c *Config) WithProtocols(protocols ...string) *Config {
	c.Protocols = protocols
	return c
}

// WithHeader 设置握手请求头并返回当前配置对象
func (c *Config) WithHeader(header http.Header) *Config {
	c.Header = header
	return c
}

// WithTransport 设置传输层参数并返回当前配置对象
func (c *Config) WithTransport(transport *wscconfig.WSC) *Config {
	c.Transport = transport
	return c
}

// Clone 深拷贝配置，客户端持有独立副本
func (c *Config) Clone() *Config {
	cp := *c
	if c.Protocols != nil {
		cp.Protocols = append([]string(nil), c.Protocols...)
	}
	if c.Header != nil {
		cp.Header = c.Header.Clone()
	}
	var transport *wscconfig.WSC
	if c.Transport != nil {
		t := *c.Transport
		transport = &t
	}
	cp.Transport = safe.MergeWithDefaults[wscconfig.WSC](transport, wscconfig.Default())
	return &cp
}
