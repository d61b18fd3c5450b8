/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 10:45:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-19 10:44:51
 * @FilePath: \go-realtime\models\errors_test.go
 * @Description: 错误码测试
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers(t *testing.T) {
	assert.True(t, IsInvalidURLError(errorx.NewError(ErrTypeInvalidURL, "http://x")))
	assert.True(t, IsQueueFullError(ErrPendingQueueFull))
	assert.True(t, IsQueueClosedError(ErrPendingQueueClosed))
	assert.True(t, IsConnectionClosedError(ErrConnectionClosed))
	assert.True(t, IsConnectionClosedError(ErrClientClosed))

	plain := errors.New("plain")
	assert.False(t, IsInvalidURLError(plain))
	assert.False(t, IsQueueFullError(plain))
	assert.False(t, IsQueueClosedError(nil))
	assert.False(t, IsConnectionClosedError(plain))
}

func TestErrorMessages(t *testing.T) {
	err := errorx.NewError(ErrTypeInvalidURL, "http://x")
	assert.Contains(t, err.Error(), "http://x")
	assert.Contains(t, ErrPendingQueueFull.Error(), "pending queue is full")
}

func TestPredefinedErrorsCarryTypeAndMessage(t *testing.T) {
	cases := []struct {
		err     errorx.BaseError
		errType ErrorType
		msg     string
	}{
		{ErrInvalidURL, ErrTypeInvalidURL, "invalid websocket url"},
		{ErrConnectionClosed, ErrTypeConnectionClosed, "connection closed"},
		{ErrClientClosed, ErrTypeClientClosed, "client closed"},
		{ErrReconnectExhausted, ErrTypeReconnectExhausted, "reconnect attempts exhausted"},
		{ErrInvalidMessageFormat, ErrTypeInvalidMessageFormat, "invalid message format"},
		{ErrMessageEncode, ErrTypeMessageEncode, "message encode failed"},
		{ErrPendingQueueFull, ErrTypePendingQueueFull, "pending queue is full"},
		{ErrPendingQueueClosed, ErrTypePendingQueueClosed, "pending queue is closed"},
		{ErrConfigValidationFailed, ErrTypeConfigValidationFailed, "config validation failed"},
		{ErrConfigAutoFixFailed, ErrTypeConfigAutoFixFailed, "config auto-fix failed"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.errType, tc.err.GetType(), tc.msg)
		assert.Equal(t, tc.msg, tc.err.Error())
		assert.NotEqual(t, "unknown error", tc.err.Error())
	}
}

func TestRegisteredTemplatesFormatArgs(t *testing.T) {
	assert.Equal(t, "reconnect attempts exhausted after 3 tries",
		errorx.NewError(ErrTypeReconnectExhausted, 3).Error())
	assert.Equal(t, "config validation failed: bad url",
		errorx.NewError(ErrTypeConfigValidationFailed, "bad url").Error())
	assert.Equal(t, ErrTypeInvalidURL, errorx.NewError(ErrTypeInvalidURL, "ftp://x").GetType())
}

func TestErrorHelpersSeeWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("push: %w", ErrPendingQueueFull)
	assert.True(t, IsQueueFullError(wrapped))
	assert.True(t, errors.Is(wrapped, ErrPendingQueueFull))
	assert.False(t, IsQueueClosedError(wrapped))

	assert.True(t, IsConnectionClosedError(errorx.WrapError("send", ErrClientClosed)))
	assert.True(t, IsInvalidURLError(fmt.Errorf("connect: %w", errorx.NewError(ErrTypeInvalidURL, "x"))))
}
