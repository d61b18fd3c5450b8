/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 11:20:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-19 11:46:40
 * @FilePath: \go-realtime\client\client.go
 * @Description: Client 结构体及其方法
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jpillora/backoff"
	"github.com/kamalyes/go-realtime/models"
	"github.com/kamalyes/go-realtime/queue"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

// Client 实时通道客户端
// 维护一条到推送端点的逻辑连接，对调用方屏蔽重连、心跳与退避细节
type Client struct {
	id        string
	cfg       *Config
	logger    Logger
	dialer    Dialer
	scheduler Scheduler
	backoff   *backoff.Backoff

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex    // 保护以下连接状态
	gen           atomic.Uint64 // 连接代数，只在持有 mu 时递增
	token         string        // 鉴权令牌
	conn          Conn          // 当前连接
	dialing       bool          // 拨号进行中
	flushing      bool          // 待发送队列回放中
	closed        bool          // 客户端已销毁
	attempts      int           // 连续重连次数
	stopReconnect func()        // 取消已调度的重连
	stopHeartbeat func()        // 停止心跳
	connectedAt   time.Time
	lastPongAt    time.Time

	writeMu sync.Mutex // 底层连接同一时刻只允许一个写者

	pending  *queue.PendingQueue
	handlers *handlerRegistry
	status   *statusHub

	sent      atomic.Int64
	received  atomic.Int64
	queued    atomic.Int64
	dropped   atomic.Int64
	malformed atomic.Int64
	pings     atomic.Int64
}

// Option 客户端选项
type Option func(*Client)

// WithLogger 设置日志器
func WithLogger(l Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithDialer 设置自定义拨号器
func WithDialer(d Dialer) Option {
	return func(c *Client) {
		c.dialer = d
	}
}

// WithScheduler 设置重连调度器，AfterFunc 不得同步执行任务
func WithScheduler(s Scheduler) Option {
	return func(c *Client) {
		c.scheduler = s
	}
}

// New 创建客户端，cfg 为 nil 时使用默认配置
// 配置会被复制并自动修复可修复项，New 本身不会失败
func New(cfg *Config, opts ...Option) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.Clone()

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		id:       uuid.NewString(),
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		handlers: newHandlerRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = initLogger(cfg.Transport)
	}

	c.applyConfigFixes()

	if c.dialer == nil {
		c.dialer = NewGorillaDialer(cfg.Protocols, cfg.HandshakeTimeout)
	}
	if c.scheduler == nil {
		c.scheduler = newGoScheduler(ctx, func(r interface{}) {
			c.logger.ErrorKV("重连任务 panic", "client_id", c.id, "panic", r)
		})
	}

	c.backoff = &backoff.Backoff{
		Min:    cfg.ReconnectDelay,
		Max:    mathx.IF(cfg.MaxReconnectDelay > 0, cfg.MaxReconnectDelay, time.Duration(math.MaxInt64)),
		Factor: ReconnectFactor,
		Jitter: false,
	}
	c.pending = queue.NewPendingQueue(cfg.Transport.MessageBufferSize, cfg.MaxPendingMessages)
	c.status = newStatusHub(models.ConnectionStatusDisconnected, c.invokeStatusHandler)

	return c
}

// applyConfigFixes 自动修复配置并记录验证结果
func (c *Client) applyConfigFixes() {
	validator := NewConfigValidator()
	for _, r := range validator.Validate(c.cfg) {
		if r.Level >= ValidationLevelWarning {
			c.logger.WarnKV("配置检查", "client_id", c.id, "field", r.Field, "level", r.Level.String(), "message", r.Message)
		}
	}
	fixed, err := validator.AutoFix(c.cfg)
	if err != nil {
		c.logger.ErrorKV("配置自动修复失败", "client_id", c.id, "error", err)
	}
	for _, r := range fixed {
		c.logger.InfoKV("配置已修复", "client_id", c.id, "field", r.Field)
	}

	// 无法修复的项（如非法地址）留到 Connect 时按构造失败处理
	for _, r := range validator.Validate(c.cfg) {
		switch {
		case r.Level >= ValidationLevelError && !r.AutoFixable:
			c.logger.ErrorKV("配置无效", "client_id", c.id,
				"error", errorx.NewError(models.ErrTypeConfigValidationFailed, r.Message))
		case r.Level == ValidationLevelInfo:
			c.logger.InfoKV("配置提示", "client_id", c.id, "field", r.Field, "message", r.Message)
		}
	}
}

// ID 客户端实例ID
func (c *Client) ID() string {
	return c.id
}

// Config 返回配置副本
func (c *Client) Config() *Config {
	return c.cfg.Clone()
}

// SetAuthToken 设置鉴权令牌，仅影响之后的 Connect
func (c *Client) SetAuthToken(token string) {
	syncx.WithLock(&c.mu, func() {
		c.token = token
	})
}

// ClearAuthToken 清除鉴权令牌
func (c *Client) ClearAuthToken() {
	c.SetAuthToken("")
}

// AuthToken 返回当前令牌
func (c *Client) AuthToken() string {
	return syncx.WithLockReturnValue(&c.mu, func() string {
		return c.token
	})
}

// GetStatus 获取当前连接状态
func (c *Client) GetStatus() models.ConnectionStatus {
	return c.status.get()
}

// IsConnected 检查是否已连接
func (c *Client) IsConnected() bool {
	return c.GetStatus() == models.ConnectionStatusConnected
}

// PendingCount 待发送队列长度
func (c *Client) PendingCount() int {
	return c.pending.Len()
}

// Subscribe 订阅指定类型的消息
func (c *Client) Subscribe(messageType string, handler MessageHandler) *Subscription {
	if handler == nil {
		return newSubscription(nil)
	}
	return newSubscription(c.handlers.add(messageType, handler))
}

// SubscribeAll 订阅全部入站消息（pong 除外）
func (c *Client) SubscribeAll(handler MessageHandler) *Subscription {
	if handler == nil {
		return newSubscription(nil)
	}
	return newSubscription(c.handlers.addGlobal(handler))
}

// OnStatusChange 注册状态观察者，注册时立即以当前状态回调一次
func (c *Client) OnStatusChange(handler StatusHandler) *Subscription {
	if handler == nil {
		return newSubscription(nil)
	}
	return newSubscription(c.status.subscribe(handler))
}

// HandlerCount 指定类型的处理器数量
func (c *Client) HandlerCount(messageType string) int {
	return c.handlers.count(messageType)
}

// GlobalHandlerCount 全局处理器数量
func (c *Client) GlobalHandlerCount() int {
	return c.handlers.countGlobal()
}

// StatusObserverCount 状态观察者数量
func (c *Client) StatusObserverCount() int {
	return c.status.count()
}

// Stats 运行统计快照
func (c *Client) Stats() models.ClientStats {
	c.mu.Lock()
	attempts, connectedAt, lastPongAt := c.attempts, c.connectedAt, c.lastPongAt
	c.mu.Unlock()

	return models.ClientStats{
		ClientID:          c.id,
		Status:            c.GetStatus(),
		ReconnectAttempts: attempts,
		MessagesSent:      c.sent.Load(),
		MessagesReceived:  c.received.Load(),
		MessagesQueued:    c.queued.Load(),
		MessagesDropped:   c.dropped.Load(),
		MalformedInbound:  c.malformed.Load(),
		PendingMessages:   c.pending.Len(),
		PendingCapacity:   c.pending.Cap(),
		PingsSent:         c.pings.Load(),
		LastPongAt:        lastPongAt,
		ConnectedAt:       connectedAt,
	}
}

// invokeStatusHandler 执行状态观察者，panic 不影响其他观察者
func (c *Client) invokeStatusHandler(fn StatusHandler, status models.ConnectionStatus) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.ErrorKV("状态观察者 panic", "client_id", c.id, "status", status.String(), "panic", r)
		}
	}()
	fn(status)
}

// invokeMessageHandler 执行消息处理器，panic 不影响其他处理器与连接
func (c *Client) invokeMessageHandler(fn MessageHandler, msg *models.Message) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.ErrorKV("消息处理器 panic", "client_id", c.id, "type", msg.Type, "panic", r)
		}
	}()
	fn(msg)
}
