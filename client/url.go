/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 17:02:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-12 17:02:00
 * @FilePath: \go-realtime\client\url.go
 * @Description: 连接地址构造
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"net/url"
	"strings"

	"github.com/kamalyes/go-realtime/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
)

// TokenQueryParam 令牌查询参数名
const TokenQueryParam = "token"

// parseEndpoint 校验连接地址为 ws/wss 地址
func parseEndpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "ws" && u.Scheme != "wss") {
		return nil, errorx.NewError(models.ErrTypeInvalidURL, raw)
	}
	return u, nil
}

// buildURL 拼接令牌参数，基础地址已有查询串时用 & 连接
func buildURL(base, token string) (string, error) {
	if _, err := parseEndpoint(base); err != nil {
		return "", err
	}
	if token == "" {
		return base, nil
	}
	sep := mathx.IF(strings.Contains(base, "?"), "&", "?")
	return base + sep + TokenQueryParam + "=" + url.QueryEscape(token), nil
}
