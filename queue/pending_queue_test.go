/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 14:40:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-19 11:41:30
 * @FilePath: \go-realtime\queue\pending_queue_test.go
 * @Description: 待发送队列测试
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package queue

import (
	"fmt"
	"sync"
	"testing"

	"github.com/kamalyes/go-realtime/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMsg(t testing.TB, i int) *models.Message {
	msg, err := models.NewMessage(fmt.Sprintf("m%d", i), map[string]int{"i": i})
	require.NoError(t, err)
	return msg
}

// popAll 按 FIFO 顺序取出全部消息
func popAll(q *PendingQueue) []*models.Message {
	var out []*models.Message
	for {
		msg, ok := q.TryPop()
		if !ok {
			return out
		}
		out = append(out, msg)
	}
}

// TestPendingQueueFIFO 测试先进先出顺序（跨越扩容与环形回绕）
func TestPendingQueueFIFO(t *testing.T) {
	q := NewPendingQueue(4, 1000)

	// 先制造回绕
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Push(newMsg(t, -1)))
	}
	for i := 0; i < 3; i++ {
		_, ok := q.TryPop()
		require.True(t, ok)
	}

	for i := 0; i < 100; i++ {
		require.NoError(t, q.Push(newMsg(t, i)))
	}
	assert.Equal(t, 100, q.Len())
	assert.GreaterOrEqual(t, q.Cap(), 100)

	for i := 0; i < 100; i++ {
		msg, ok := q.TryPop()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("m%d", i), msg.Type)
	}

	_, ok := q.TryPop()
	assert.False(t, ok)
}

// TestPendingQueuePushFront 测试放回队首
func TestPendingQueuePushFront(t *testing.T) {
	q := NewPendingQueue(2, 10)

	require.NoError(t, q.Push(newMsg(t, 1)))
	require.NoError(t, q.Push(newMsg(t, 2)))

	first, ok := q.TryPop()
	require.True(t, ok)
	require.NoError(t, q.PushFront(first))

	msgs := popAll(q)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].Type)
	assert.Equal(t, "m2", msgs[1].Type)
}

// TestPendingQueueCapacityLimit 测试容量上限
func TestPendingQueueCapacityLimit(t *testing.T) {
	q := NewPendingQueue(2, 5)

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Push(newMsg(t, i)))
	}
	err := q.Push(newMsg(t, 5))
	assert.Error(t, err)
	assert.True(t, models.IsQueueFullError(err))
	assert.Equal(t, 5, q.Len())
	assert.Equal(t, 5, q.Cap())
}

// TestPendingQueueFixedCapacity 测试最小容量等于最大容量时不扩容
func TestPendingQueueFixedCapacity(t *testing.T) {
	q := NewPendingQueue(3, 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, q.Push(newMsg(t, i)))
	}
	assert.True(t, models.IsQueueFullError(q.Push(newMsg(t, 3))))
	assert.True(t, models.IsQueueFullError(q.PushFront(newMsg(t, 3))))
	assert.Equal(t, 3, q.Cap())
	assert.Equal(t, int64(0), q.Stats()["resizeCount"])
}

// TestPendingQueueClose 测试关闭后拒绝写入但可继续取出
func TestPendingQueueClose(t *testing.T) {
	q := NewPendingQueue(4, 10)
	require.NoError(t, q.Push(newMsg(t, 1)))

	q.Close()
	assert.True(t, q.IsClosed())
	assert.True(t, models.IsQueueClosedError(q.Push(newMsg(t, 2))))
	assert.True(t, models.IsQueueClosedError(q.PushFront(newMsg(t, 2))))

	msg, ok := q.TryPop()
	require.True(t, ok)
	assert.Equal(t, "m1", msg.Type)
}

// TestPendingQueueGrowAndShrink 测试扩容与缩容
func TestPendingQueueGrowAndShrink(t *testing.T) {
	q := NewPendingQueue(8, 100000)

	for i := 0; i < 5000; i++ {
		require.NoError(t, q.Push(newMsg(t, i)))
	}
	expanded := q.Cap()
	assert.GreaterOrEqual(t, expanded, 5000)

	stats := q.Stats()
	assert.Greater(t, stats["resizeCount"].(int64), int64(0))

	for q.Len() > 10 {
		_, ok := q.TryPop()
		require.True(t, ok)
	}
	assert.Less(t, q.Cap(), expanded)
	assert.Greater(t, q.Stats()["shrinkCount"].(int64), int64(0))

	// 缩容后顺序不变
	msg, ok := q.TryPop()
	require.True(t, ok)
	assert.Equal(t, "m4990", msg.Type)
}

// TestPendingQueueClear 测试清空
func TestPendingQueueClear(t *testing.T) {
	q := NewPendingQueue(2, 100)
	for i := 0; i < 50; i++ {
		require.NoError(t, q.Push(newMsg(t, i)))
	}

	assert.Equal(t, 50, q.Clear())
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 2, q.Cap())
	assert.Empty(t, popAll(q))
}

// TestPendingQueueDefaults 测试默认容量
func TestPendingQueueDefaults(t *testing.T) {
	q := NewPendingQueue(0, 0)
	assert.Equal(t, DefaultMinCapacity, q.Cap())
	assert.Equal(t, DefaultMaxCapacity, q.Stats()["maxCapacity"])

	small := NewPendingQueue(10, 3)
	assert.Equal(t, 3, small.Cap())
}

// TestPendingQueueConcurrent 测试并发写入与读取
func TestPendingQueueConcurrent(t *testing.T) {
	q := NewPendingQueue(16, 100000)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				assert.NoError(t, q.Push(newMsg(t, w*1000+i)))
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 4000, q.Len())
	assert.Len(t, popAll(q), 4000)
}

func BenchmarkPendingQueuePushPop(b *testing.B) {
	q := NewPendingQueue(64, 100000)
	msg := newMsg(b, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = q.Push(msg)
		_, _ = q.TryPop()
	}
}
