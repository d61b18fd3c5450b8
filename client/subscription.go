/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 15:30:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 20:44:16
 * @FilePath: \go-realtime\client\subscription.go
 * @Description: 消息处理器注册表与订阅句柄
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"sync"
	"sync/atomic"

	"github.com/kamalyes/go-realtime/models"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

// MessageHandler 入站消息处理器
type MessageHandler func(msg *models.Message)

// StatusHandler 连接状态观察者
type StatusHandler func(status models.ConnectionStatus)

// Subscription 订阅句柄
// Unsubscribe 可重复调用，nil 句柄与客户端销毁后调用均安全
type Subscription struct {
	once   sync.Once
	cancel func()
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Unsubscribe 取消订阅
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// handlerRegistry 按消息类型索引的处理器集合，外加全局处理器集合
type handlerRegistry struct {
	mu     sync.RWMutex
	nextID atomic.Uint64
	byType map[string]map[uint64]MessageHandler
	global map[uint64]MessageHandler
}

func newHandlerRegistry() *handlerRegistry {
	return &handlerRegistry{
		byType: make(map[string]map[uint64]MessageHandler),
		global: make(map[uint64]MessageHandler),
	}
}

// add 注册指定类型处理器
func (r *handlerRegistry) add(messageType string, h MessageHandler) func() {
	id := r.nextID.Add(1)
	syncx.WithLock(&r.mu, func() {
		set, ok := r.byType[messageType]
		if !ok {
			set = make(map[uint64]MessageHandler)
			r.byType[messageType] = set
		}
		set[id] = h
	})
	return func() {
		syncx.WithLock(&r.mu, func() {
			set, ok := r.byType[messageType]
			if !ok {
				return
			}
			delete(set, id)
			if len(set) == 0 {
				delete(r.byType, messageType)
			}
		})
	}
}

// addGlobal 注册全局处理器
func (r *handlerRegistry) addGlobal(h MessageHandler) func() {
	id := r.nextID.Add(1)
	syncx.WithLock(&r.mu, func() {
		r.global[id] = h
	})
	return func() {
		syncx.WithLock(&r.mu, func() {
			delete(r.global, id)
		})
	}
}

// snapshot 返回某类型处理器与全局处理器的快照，调用方在锁外执行
func (r *handlerRegistry) snapshot(messageType string) []MessageHandler {
	return syncx.WithRLockReturnValue(&r.mu, func() []MessageHandler {
		set := r.byType[messageType]
		out := make([]MessageHandler, 0, len(set)+len(r.global))
		for _, h := range set {
			out = append(out, h)
		}
		for _, h := range r.global {
			out = append(out, h)
		}
		return out
	})
}

// count 返回某类型处理器数量
func (r *handlerRegistry) count(messageType string) int {
	return syncx.WithRLockReturnValue(&r.mu, func() int {
		return len(r.byType[messageType])
	})
}

// countGlobal 返回全局处理器数量
func (r *handlerRegistry) countGlobal() int {
	return syncx.WithRLockReturnValue(&r.mu, func() int {
		return len(r.global)
	})
}

// reset 清空所有处理器
func (r *handlerRegistry) reset() {
	syncx.WithLock(&r.mu, func() {
		r.byType = make(map[string]map[uint64]MessageHandler)
		r.global = make(map[uint64]MessageHandler)
	})
}
