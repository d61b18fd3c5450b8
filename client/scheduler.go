/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-13 10:02:31
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-13 10:02:31
 * @FilePath: \go-realtime\client\scheduler.go
 * @Description: 延迟任务调度（重连定时器）
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"context"
	"time"

	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

// Scheduler 延迟执行任务，返回的 stop 调用后任务不会再执行
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (stop func())
}

// goScheduler 基于 syncx.Go 的默认调度器
type goScheduler struct {
	ctx     context.Context
	onPanic func(r interface{})
}

// newGoScheduler 创建默认调度器，ctx 取消后所有未触发任务失效
func newGoScheduler(ctx context.Context, onPanic func(r interface{})) *goScheduler {
	return &goScheduler{ctx: ctx, onPanic: onPanic}
}

// AfterFunc 实现 Scheduler
func (s *goScheduler) AfterFunc(d time.Duration, fn func()) func() {
	ctx, cancel := context.WithCancel(s.ctx)
	syncx.Go(ctx).
		WithDelay(d).
		OnPanic(s.onPanic).
		Exec(func() {
			if ctx.Err() != nil {
				return
			}
			fn()
		})
	return cancel
}
