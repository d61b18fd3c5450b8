/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 14:02:18
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-19 11:40:12
 * @FilePath: \go-realtime\queue\pending_queue.go
 * @Description: 断线期间的出站消息队列（FIFO，动态扩容/缩容）
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package queue

import (
	"sync"
	"sync/atomic"

	"github.com/kamalyes/go-realtime/models"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

const (
	DefaultMinCapacity = 64     // 默认最小容量
	DefaultMaxCapacity = 100000 // 默认最大容量
)

// PendingQueue 待发送消息队列
// 环形缓冲区，满时按增长策略扩容，使用率过低时缩容
type PendingQueue struct {
	mu           sync.RWMutex
	items        []*models.Message // 消息数组
	head         int               // 队列头部索引
	tail         int               // 队列尾部索引
	count        int64             // 当前消息数（原子）
	capacity     int               // 当前容量
	minCapacity  int               // 最小容量
	maxCapacity  int               // 最大容量
	closed       int32             // 关闭标记（原子）
	resizeCount  int64             // 扩容次数
	shrinkCount  int64             // 缩容次数
	growthFactor float64           // 增长因子
}

// NewPendingQueue 创建待发送队列
// minCap: 最小容量，maxCap: 最大容量
func NewPendingQueue(minCap, maxCap int) *PendingQueue {
	if minCap <= 0 {
		minCap = DefaultMinCapacity
	}
	if maxCap <= 0 {
		maxCap = DefaultMaxCapacity
	}
	if minCap > maxCap {
		minCap = maxCap
	}

	return &PendingQueue{
		items:        make([]*models.Message, minCap),
		capacity:     minCap,
		minCapacity:  minCap,
		maxCapacity:  maxCap,
		growthFactor: 1.5,
	}
}

// Push 追加到队尾，队列满且无法扩容时返回 ErrPendingQueueFull
func (q *PendingQueue) Push(msg *models.Message) error {
	if q.IsClosed() {
		return models.ErrPendingQueueClosed
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.ensureSpace(); err != nil {
		return err
	}

	q.items[q.tail] = msg
	q.tail = (q.tail + 1) % q.capacity
	atomic.AddInt64(&q.count, 1)
	return nil
}

// PushFront 放回队首，用于发送失败的消息重新排队，保持原有顺序
func (q *PendingQueue) PushFront(msg *models.Message) error {
	if q.IsClosed() {
		return models.ErrPendingQueueClosed
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.ensureSpace(); err != nil {
		return err
	}

	q.head = (q.head - 1 + q.capacity) % q.capacity
	q.items[q.head] = msg
	atomic.AddInt64(&q.count, 1)
	return nil
}

// TryPop 取出队首消息，队列为空立即返回
func (q *PendingQueue) TryPop() (*models.Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.isEmpty() {
		return nil, false
	}

	msg := q.items[q.head]
	q.items[q.head] = nil // 释放引用，帮助GC
	q.head = (q.head + 1) % q.capacity
	atomic.AddInt64(&q.count, -1)

	if q.shouldShrink() {
		q.resize(q.calculateShrink())
	}

	return msg, true
}

// Clear 清空队列，返回被丢弃的消息数
func (q *PendingQueue) Clear() int {
	return syncx.WithLockReturnValue(&q.mu, func() int {
		n := int(atomic.LoadInt64(&q.count))
		q.items = make([]*models.Message, q.minCapacity)
		q.head, q.tail, q.capacity = 0, 0, q.minCapacity
		atomic.StoreInt64(&q.count, 0)
		return n
	})
}

// Close 关闭队列，之后的 Push 均失败，已有消息仍可取出
func (q *PendingQueue) Close() {
	atomic.StoreInt32(&q.closed, 1)
}

// Len 返回当前队列长度
func (q *PendingQueue) Len() int {
	return int(atomic.LoadInt64(&q.count))
}

// Cap 返回当前队列容量
func (q *PendingQueue) Cap() int {
	return syncx.WithRLockReturnValue(&q.mu, func() int {
		return q.capacity
	})
}

// IsClosed 检查队列是否已关闭
func (q *PendingQueue) IsClosed() bool {
	return atomic.LoadInt32(&q.closed) == 1
}

// ensureSpace 满时扩容（需要持有锁）
func (q *PendingQueue) ensureSpace() error {
	if !q.isFull() {
		return nil
	}
	if q.capacity < q.maxCapacity {
		q.resize(q.calculateGrowth())
		return nil
	}
	return models.ErrPendingQueueFull
}

// isEmpty 检查队列是否为空（需要持有锁）
func (q *PendingQueue) isEmpty() bool {
	return atomic.LoadInt64(&q.count) == 0
}

// isFull 检查队列是否已满（需要持有锁）
func (q *PendingQueue) isFull() bool {
	return atomic.LoadInt64(&q.count) >= int64(q.capacity)
}

// shouldShrink 使用率低于25%且容量大于最小容量时缩容
func (q *PendingQueue) shouldShrink() bool {
	return q.capacity > q.minCapacity &&
		atomic.LoadInt64(&q.count) < int64(q.capacity/4)
}

// calculateGrowth 计算扩容后的容量
// 小容量时2倍增长，中等容量按增长因子，大容量按25%递增
func (q *PendingQueue) calculateGrowth() int {
	currentCap := q.capacity
	var newCap int

	switch {
	case currentCap < 1024:
		newCap = currentCap * 2
	case currentCap < 10000:
		newCap = int(float64(currentCap) * q.growthFactor)
	default:
		newCap = currentCap + min(currentCap/4, 10000)
	}

	return min(newCap, currentCap*2, q.maxCapacity)
}

// calculateShrink 缩容为当前容量的2/3，至少保留当前消息数的2倍
func (q *PendingQueue) calculateShrink() int {
	return max(q.capacity*2/3, int(atomic.LoadInt64(&q.count))*2)
}

// resize 调整队列容量（需要持有锁）
func (q *PendingQueue) resize(newCap int) {
	oldCap := q.capacity
	newCap = max(q.minCapacity, min(newCap, q.maxCapacity))
	if newCap == oldCap {
		return
	}

	newItems := make([]*models.Message, newCap)
	count := int(atomic.LoadInt64(&q.count))
	for i := 0; i < count; i++ {
		newItems[i] = q.items[(q.head+i)%oldCap]
	}

	q.items = newItems
	q.head = 0
	q.tail = count % newCap
	q.capacity = newCap

	if newCap > oldCap {
		atomic.AddInt64(&q.resizeCount, 1)
	} else {
		atomic.AddInt64(&q.shrinkCount, 1)
	}
}

// Stats 返回队列统计信息
func (q *PendingQueue) Stats() map[string]interface{} {
	q.mu.RLock()
	defer q.mu.RUnlock()

	count := atomic.LoadInt64(&q.count)
	return map[string]interface{}{
		"length":       count,
		"capacity":     q.capacity,
		"minCapacity":  q.minCapacity,
		"maxCapacity":  q.maxCapacity,
		"utilization":  float64(count) / float64(q.capacity) * 100,
		"closed":       q.IsClosed(),
		"resizeCount":  atomic.LoadInt64(&q.resizeCount),
		"shrinkCount":  atomic.LoadInt64(&q.shrinkCount),
		"growthFactor": q.growthFactor,
	}
}
