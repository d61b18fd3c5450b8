/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-14 14:20:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 21:12:40
 * @FilePath: \go-realtime\client\fakes_test.go
 * @Description: 测试用的伪连接、伪拨号器与可手动触发的调度器
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/kamalyes/go-realtime/models"
	"github.com/stretchr/testify/require"
)

var errFakeClosed = errors.New("fake conn closed")

// frame 伪连接的一次读取结果
type frame struct {
	messageType int
	data        []byte
	err         error
}

// controlFrame 写出的控制帧
type controlFrame struct {
	messageType int
	data        []byte
}

// fakeConn 内存连接，入站帧由测试注入，出站帧被记录
type fakeConn struct {
	inbound chan frame
	done    chan struct{}

	mu        sync.Mutex
	writes    []*models.Message
	controls  []controlFrame
	readLimit int64
	failWrite error
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbound: make(chan frame, 64),
		done:    make(chan struct{}),
	}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case fr := <-f.inbound:
		return fr.messageType, fr.data, fr.err
	case <-f.done:
		return 0, nil, errFakeClosed
	}
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite != nil {
		return f.failWrite
	}
	var msg models.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}
	f.writes = append(f.writes, &msg)
	return nil
}

func (f *fakeConn) WriteControl(messageType int, data []byte, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.controls = append(f.controls, controlFrame{messageType: messageType, data: data})
	return nil
}

func (f *fakeConn) SetReadLimit(limit int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readLimit = limit
}

func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeConn) Subprotocol() string { return "" }

func (f *fakeConn) Close() error {
	f.closeOnce.Do(func() { close(f.done) })
	return nil
}

// pushText 注入一条入站文本帧
func (f *fakeConn) pushText(t *testing.T, raw string) {
	t.Helper()
	f.inbound <- frame{messageType: websocket.TextMessage, data: []byte(raw)}
}

// pushClose 模拟对端发送关闭帧
func (f *fakeConn) pushClose(code int) {
	f.inbound <- frame{err: &websocket.CloseError{Code: code}}
}

// pushError 模拟传输层错误
func (f *fakeConn) pushError(err error) {
	f.inbound <- frame{err: err}
}

func (f *fakeConn) setFailWrite(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrite = err
}

// written 已写出的消息，跳过指定类型
func (f *fakeConn) written(skip ...string) []*models.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Message, 0, len(f.writes))
	for _, m := range f.writes {
		keep := true
		for _, s := range skip {
			if m.Type == s {
				keep = false
			}
		}
		if keep {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeConn) controlFrames() []controlFrame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]controlFrame(nil), f.controls...)
}

func (f *fakeConn) isClosed() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// dialResult 一次拨号的预设结果
type dialResult struct {
	conn *fakeConn
	err  error
}

// fakeDialer 按脚本返回拨号结果，脚本用尽后返回最后一项
type fakeDialer struct {
	mu      sync.Mutex
	script  []dialResult
	urls    []string
	headers []http.Header
}

func newFakeDialer(script ...dialResult) *fakeDialer {
	return &fakeDialer{script: script}
}

func (d *fakeDialer) Dial(_ context.Context, url string, header http.Header) (Conn, *http.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := len(d.urls)
	d.urls = append(d.urls, url)
	d.headers = append(d.headers, header)

	if len(d.script) == 0 {
		return nil, nil, errors.New("no dial script")
	}
	if idx >= len(d.script) {
		idx = len(d.script) - 1
	}
	res := d.script[idx]
	if res.err != nil {
		return nil, nil, res.err
	}
	return res.conn, nil, nil
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.urls)
}

func (d *fakeDialer) dialedURLs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.urls...)
}

// scheduledTask 调度记录
type scheduledTask struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

// manualScheduler 只记录不执行，由测试手动触发
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*scheduledTask
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &scheduledTask{delay: d, fn: fn}
	s.tasks = append(s.tasks, task)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		task.stopped = true
	}
}

func (s *manualScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *manualScheduler) delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.delay)
	}
	return out
}

// fire 触发第 i 个任务，已停止的任务同样会执行以验证客户端自身的过期检查
func (s *manualScheduler) fire(i int) {
	s.mu.Lock()
	task := s.tasks[i]
	s.mu.Unlock()
	task.fn()
}

func (s *manualScheduler) isStopped(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[i].stopped
}

// statusRecorder 按顺序记录状态通知
type statusRecorder struct {
	mu       sync.Mutex
	statuses []models.ConnectionStatus
}

func (r *statusRecorder) record(s models.ConnectionStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, s)
}

func (r *statusRecorder) all() []models.ConnectionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ConnectionStatus(nil), r.statuses...)
}

func (r *statusRecorder) last() models.ConnectionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return ""
	}
	return r.statuses[len(r.statuses)-1]
}

const (
	testURL     = "ws://example.test/ws"
	waitTimeout = 2 * time.Second
	waitTick    = 5 * time.Millisecond
)

// testConfig 测试默认配置：关闭心跳，快速重连
func testConfig() *Config {
	return DefaultConfig().
		WithURL(testURL).
		WithReconnectAttempts(2).
		WithReconnectDelay(100 * time.Millisecond).
		WithHeartbeatInterval(0)
}

// newTestClient 创建使用伪拨号器与手动调度器的客户端
func newTestClient(t *testing.T, cfg *Config, dialer Dialer) (*Client, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	c := New(cfg, WithLogger(NewNoOpLogger()), WithDialer(dialer), WithScheduler(sched))
	t.Cleanup(c.Close)
	return c, sched
}

// waitStatus 等待客户端进入指定状态
func waitStatus(t *testing.T, c *Client, want models.ConnectionStatus) {
	t.Helper()
	require.Eventually(t, func() bool {
		return c.GetStatus() == want
	}, waitTimeout, waitTick, "等待状态 %s，当前 %s", want, c.GetStatus())
}
