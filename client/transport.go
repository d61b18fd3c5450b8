/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 13:10:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-17 22:05:44
 * @FilePath: \go-realtime\client\transport.go
 * @Description: 传输层抽象，默认实现基于 gorilla/websocket
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kamalyes/go-realtime/models"
)

// Conn 底层连接，*websocket.Conn 直接满足该接口
type Conn interface {
	ReadMessage() (messageType int, data []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadLimit(limit int64)
	SetWriteDeadline(t time.Time) error
	Subprotocol() string
	Close() error
}

// Dialer 建立底层连接
type Dialer interface {
	Dial(ctx context.Context, url string, header http.Header) (Conn, *http.Response, error)
}

// DialerFunc 函数适配为 Dialer
type DialerFunc func(ctx context.Context, url string, header http.Header) (Conn, *http.Response, error)

// Dial 实现 Dialer
func (f DialerFunc) Dial(ctx context.Context, url string, header http.Header) (Conn, *http.Response, error) {
	return f(ctx, url, header)
}

// GorillaDialer 基于 gorilla/websocket 的拨号器
type GorillaDialer struct {
	Dialer *websocket.Dialer
}

// NewGorillaDialer 创建拨号器，协商给定子协议
func NewGorillaDialer(protocols []string, handshakeTimeout time.Duration) *GorillaDialer {
	d := *websocket.DefaultDialer
	d.Subprotocols = protocols
	if handshakeTimeout > 0 {
		d.HandshakeTimeout = handshakeTimeout
	}
	return &GorillaDialer{Dialer: &d}
}

// Dial 实现 Dialer
func (g *GorillaDialer) Dial(ctx context.Context, url string, header http.Header) (Conn, *http.Response, error) {
	conn, resp, err := g.Dialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, resp, err
	}
	return conn, resp, nil
}

// closeCodeOf 从读错误中解析关闭码
// 收到关闭帧时返回对端关闭码；其余读错误以及 1006 视为传输层中断
func closeCodeOf(err error) (code int, transportErr bool) {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Code, closeErr.Code == models.CloseAbnormalClosure
	}
	return models.CloseAbnormalClosure, true
}

// IsNormalClose 检查关闭是否为正常关闭
func IsNormalClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure)
}
