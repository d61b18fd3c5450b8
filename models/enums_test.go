/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 10:40:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-12 10:40:00
 * @FilePath: \go-realtime\models\enums_test.go
 * @Description: 枚举测试
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionStatus(t *testing.T) {
	testCases := []struct {
		status ConnectionStatus
		str    string
		active bool
	}{
		{ConnectionStatusConnecting, "connecting", true},
		{ConnectionStatusConnected, "connected", true},
		{ConnectionStatusDisconnected, "disconnected", false},
		{ConnectionStatusReconnecting, "reconnecting", true},
		{ConnectionStatusError, "error", false},
	}

	for _, tc := range testCases {
		t.Run(tc.str, func(t *testing.T) {
			assert.Equal(t, tc.str, tc.status.String())
			assert.True(t, tc.status.IsValid())
			assert.Equal(t, tc.active, tc.status.IsActive())
		})
	}

	assert.False(t, ConnectionStatus("closing").IsValid())
	assert.False(t, ConnectionStatus("").IsValid())
}

func TestReservedMessageTypes(t *testing.T) {
	assert.True(t, IsReservedMessageType("ping"))
	assert.True(t, IsReservedMessageType("pong"))
	assert.False(t, IsReservedMessageType("chat"))
	assert.Equal(t, 1000, CloseNormalClosure)
	assert.Equal(t, "Client disconnect", CloseReasonClientDisconnect)
}
