/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 16:05:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 23:02:37
 * @FilePath: \go-realtime\client\status.go
 * @Description: 连接状态与观察者通知
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"sync"
	"sync/atomic"

	"github.com/kamalyes/go-realtime/models"
)

// statusObserver 观察者条目，移除后不再收到任何通知
type statusObserver struct {
	fn      StatusHandler
	removed atomic.Bool
}

// statusEvent 一次待投递的状态通知
type statusEvent struct {
	status    models.ConnectionStatus
	observers []*statusObserver
}

// statusHub 保存当前状态并串行投递状态变更
//
// transition 只入队不回调，由调用方在释放客户端锁之后调用 drain；
// 同一时刻只有一个 goroutine 在 drain，观察者按变更顺序、非并发地收到通知，
// 观察者内部再次触发的变更会排在队尾而不会死锁。
type statusHub struct {
	mu        sync.Mutex
	current   models.ConnectionStatus
	nextID    uint64
	observers map[uint64]*statusObserver
	pending   []statusEvent
	draining  bool
	invoke    func(fn StatusHandler, status models.ConnectionStatus)
}

func newStatusHub(initial models.ConnectionStatus, invoke func(StatusHandler, models.ConnectionStatus)) *statusHub {
	return &statusHub{
		current:   initial,
		observers: make(map[uint64]*statusObserver),
		invoke:    invoke,
	}
}

// get 读取当前状态
func (h *statusHub) get() models.ConnectionStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// transition 切换状态，值未变化时不产生通知
func (h *statusHub) transition(status models.ConnectionStatus) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == status {
		return false
	}
	h.current = status
	if len(h.observers) == 0 {
		return true
	}

	observers := make([]*statusObserver, 0, len(h.observers))
	for _, o := range h.observers {
		observers = append(observers, o)
	}
	h.pending = append(h.pending, statusEvent{status: status, observers: observers})
	return true
}

// subscribe 注册观察者并以当前状态回放一次
func (h *statusHub) subscribe(fn StatusHandler) func() {
	o := &statusObserver{fn: fn}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.observers[id] = o
	h.pending = append(h.pending, statusEvent{status: h.current, observers: []*statusObserver{o}})
	h.mu.Unlock()

	h.drain()

	return func() {
		o.removed.Store(true)
		h.mu.Lock()
		delete(h.observers, id)
		h.mu.Unlock()
	}
}

// drain 投递所有待处理通知，已有 goroutine 在投递时立即返回
func (h *statusHub) drain() {
	h.mu.Lock()
	if h.draining {
		h.mu.Unlock()
		return
	}
	h.draining = true

	for len(h.pending) > 0 {
		ev := h.pending[0]
		h.pending[0] = statusEvent{}
		h.pending = h.pending[1:]
		h.mu.Unlock()

		for _, o := range ev.observers {
			if !o.removed.Load() {
				h.invoke(o.fn, ev.status)
			}
		}

		h.mu.Lock()
	}

	h.pending = nil
	h.draining = false
	h.mu.Unlock()
}

// count 返回观察者数量
func (h *statusHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.observers)
}

// reset 移除所有观察者并丢弃未投递通知
func (h *statusHub) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, o := range h.observers {
		o.removed.Store(true)
	}
	h.observers = make(map[uint64]*statusObserver)
	h.pending = nil
}
