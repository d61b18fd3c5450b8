/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-13 16:44:09
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-19 12:03:37
 * @FilePath: \go-realtime\client\config_validator.go
 * @Description: 配置验证和自动修复机制
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package client

import (
	"fmt"
	"strings"
	"time"

	wscconfig "github.com/kamalyes/go-config/pkg/wsc"
	"github.com/kamalyes/go-realtime/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/safe"
)

// ValidationLevel 验证级别
type ValidationLevel int

const (
	ValidationLevelInfo     ValidationLevel = 1 // 信息级别
	ValidationLevelWarning  ValidationLevel = 2 // 警告级别
	ValidationLevelError    ValidationLevel = 3 // 错误级别
	ValidationLevelCritical ValidationLevel = 4 // 严重级别
)

// String 实现Stringer接口
func (l ValidationLevel) String() string {
	switch l {
	case ValidationLevelInfo:
		return "info"
	case ValidationLevelWarning:
		return "warning"
	case ValidationLevelError:
		return "error"
	case ValidationLevelCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ValidationResult 验证结果
type ValidationResult struct {
	Level       ValidationLevel     `json:"level"`
	Field       string              `json:"field"`
	Message     string              `json:"message"`
	Suggestion  string              `json:"suggestion"`
	AutoFixable bool                `json:"auto_fixable"`
	FixAction   func(*Config) error `json:"-"`
}

// ValidationRule 验证规则接口
type ValidationRule interface {
	// Validate 验证配置
	Validate(config *Config) []ValidationResult

	// GetName 获取规则名称
	GetName() string

	// GetDescription 获取规则描述
	GetDescription() string
}

// ConfigValidator 配置验证器
type ConfigValidator struct {
	rules []ValidationRule
}

// NewConfigValidator 创建带默认规则的配置验证器
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{
		rules: []ValidationRule{
			&URLRule{},
			&ReconnectRule{},
			&HeartbeatRule{},
			&QueueRule{},
		},
	}
}

// AddRule 添加验证规则
func (cv *ConfigValidator) AddRule(rule ValidationRule) {
	cv.rules = append(cv.rules, rule)
}

// Rules 返回已注册规则
func (cv *ConfigValidator) Rules() []ValidationRule {
	return cv.rules
}

// Validate 验证配置
func (cv *ConfigValidator) Validate(config *Config) []ValidationResult {
	var results []ValidationResult
	for _, rule := range cv.rules {
		results = append(results, rule.Validate(config)...)
	}
	return results
}

// AutoFix 自动修复可修复项，返回修复记录
func (cv *ConfigValidator) AutoFix(config *Config) ([]ValidationResult, error) {
	results := cv.Validate(config)
	fixed := make([]ValidationResult, 0)

	for _, result := range results {
		if !result.AutoFixable || result.FixAction == nil {
			continue
		}
		if err := result.FixAction(config); err != nil {
			return fixed, errorx.NewError(models.ErrTypeConfigAutoFixFailed, result.Field, err)
		}
		fixed = append(fixed, ValidationResult{
			Level:      ValidationLevelInfo,
			Field:      result.Field,
			Message:    fmt.Sprintf("已自动修复: %s", result.Message),
			Suggestion: result.Suggestion,
		})
	}

	return fixed, nil
}

// HasBlocking 是否存在无法自动修复的错误/严重项
func HasBlocking(results []ValidationResult) bool {
	for _, r := range results {
		if r.Level >= ValidationLevelError && !r.AutoFixable {
			return true
		}
	}
	return false
}

// ValidateAndReport 验证并生成报告
func (cv *ConfigValidator) ValidateAndReport(config *Config) string {
	results := cv.Validate(config)
	counts := make(map[ValidationLevel]int)

	var report strings.Builder
	report.WriteString("配置验证报告\n")
	report.WriteString("================\n\n")

	for _, result := range results {
		counts[result.Level]++
		fmt.Fprintf(&report, "[%s] %s: %s\n", result.Level, result.Field, result.Message)
		if result.Suggestion != "" {
			fmt.Fprintf(&report, "   建议: %s\n", result.Suggestion)
		}
		if result.AutoFixable {
			report.WriteString("   可自动修复\n")
		}
		report.WriteString("\n")
	}

	fmt.Fprintf(&report, "汇总: 严重=%d, 错误=%d, 警告=%d, 信息=%d\n",
		counts[ValidationLevelCritical], counts[ValidationLevelError],
		counts[ValidationLevelWarning], counts[ValidationLevelInfo])

	return report.String()
}

// ========== 具体验证规则实现 ==========

// URLRule 连接地址验证规则
type URLRule struct{}

func (r *URLRule) GetName() string        { return "URL" }
func (r *URLRule) GetDescription() string { return "验证连接地址为 ws/wss 地址" }

func (r *URLRule) Validate(config *Config) []ValidationResult {
	if _, err := parseEndpoint(config.URL); err != nil {
		return []ValidationResult{{
			Level:      ValidationLevelCritical,
			Field:      "URL",
			Message:    fmt.Sprintf("连接地址无效: %q", config.URL),
			Suggestion: fmt.Sprintf("使用 ws:// 或 wss:// 地址，或设置环境变量 %s", EnvURL),
		}}
	}
	return nil
}

// ReconnectRule 重连策略验证规则
type ReconnectRule struct{}

func (r *ReconnectRule) GetName() string        { return "Reconnect" }
func (r *ReconnectRule) GetDescription() string { return "验证重连次数与退避延迟" }

func (r *ReconnectRule) Validate(config *Config) []ValidationResult {
	var results []ValidationResult

	switch {
	case config.ReconnectAttempts < 0:
		results = append(results, ValidationResult{
			Level:       ValidationLevelError,
			Field:       "ReconnectAttempts",
			Message:     fmt.Sprintf("重连次数不能为负: %d", config.ReconnectAttempts),
			Suggestion:  "设置为0表示不自动重连",
			AutoFixable: true,
			FixAction: func(c *Config) error {
				c.ReconnectAttempts = 0
				return nil
			},
		})
	case config.ReconnectAttempts == 0:
		results = append(results, ValidationResult{
			Level:      ValidationLevelInfo,
			Field:      "ReconnectAttempts",
			Message:    "自动重连已关闭，异常断开后停留在 error 状态",
			Suggestion: fmt.Sprintf("需要自动重连时从 DefaultConfig() 构造配置（默认%d次）", DefaultReconnectAttempts),
		})
	}

	if config.ReconnectDelay <= 0 {
		results = append(results, ValidationResult{
			Level:       ValidationLevelError,
			Field:       "ReconnectDelay",
			Message:     "重连基础延迟必须大于0",
			Suggestion:  fmt.Sprintf("推荐设置为%s", DefaultReconnectDelay),
			AutoFixable: true,
			FixAction: func(c *Config) error {
				c.ReconnectDelay = DefaultReconnectDelay
				return nil
			},
		})
	} else if config.ReconnectDelay < 50*time.Millisecond {
		results = append(results, ValidationResult{
			Level:      ValidationLevelWarning,
			Field:      "ReconnectDelay",
			Message:    fmt.Sprintf("重连基础延迟过短: %s", config.ReconnectDelay),
			Suggestion: "过短的延迟会在服务端故障时造成重连风暴",
		})
	}

	if config.MaxReconnectDelay < 0 {
		results = append(results, ValidationResult{
			Level:       ValidationLevelError,
			Field:       "MaxReconnectDelay",
			Message:     "重连延迟上限不能为负",
			Suggestion:  "设置为0表示不限",
			AutoFixable: true,
			FixAction: func(c *Config) error {
				c.MaxReconnectDelay = 0
				return nil
			},
		})
	} else if config.MaxReconnectDelay > 0 && config.MaxReconnectDelay < config.ReconnectDelay {
		results = append(results, ValidationResult{
			Level:      ValidationLevelWarning,
			Field:      "MaxReconnectDelay",
			Message:    "重连延迟上限小于基础延迟，所有重连都将使用上限值",
			Suggestion: "上限应不小于基础延迟",
		})
	}

	if config.HandshakeTimeout <= 0 {
		results = append(results, ValidationResult{
			Level:       ValidationLevelError,
			Field:       "HandshakeTimeout",
			Message:     "握手超时必须大于0",
			Suggestion:  fmt.Sprintf("推荐设置为%s", DefaultHandshakeTimeout),
			AutoFixable: true,
			FixAction: func(c *Config) error {
				c.HandshakeTimeout = DefaultHandshakeTimeout
				return nil
			},
		})
	}

	return results
}

// HeartbeatRule 心跳验证规则
type HeartbeatRule struct{}

func (r *HeartbeatRule) GetName() string        { return "Heartbeat" }
func (r *HeartbeatRule) GetDescription() string { return "验证心跳间隔" }

func (r *HeartbeatRule) Validate(config *Config) []ValidationResult {
	switch {
	case config.HeartbeatInterval < 0:
		return []ValidationResult{{
			Level:       ValidationLevelError,
			Field:       "HeartbeatInterval",
			Message:     "心跳间隔不能为负",
			Suggestion:  "设置为0关闭心跳",
			AutoFixable: true,
			FixAction: func(c *Config) error {
				c.HeartbeatInterval = 0
				return nil
			},
		}}
	case config.HeartbeatInterval == 0:
		return []ValidationResult{{
			Level:   ValidationLevelInfo,
			Field:   "HeartbeatInterval",
			Message: "心跳已关闭",
		}}
	case config.HeartbeatInterval < time.Second:
		return []ValidationResult{{
			Level:      ValidationLevelWarning,
			Field:      "HeartbeatInterval",
			Message:    fmt.Sprintf("心跳间隔过短: %s", config.HeartbeatInterval),
			Suggestion: "推荐设置为30秒",
		}}
	}
	return nil
}

// QueueRule 待发送队列与传输层验证规则
type QueueRule struct{}

func (r *QueueRule) GetName() string        { return "Queue" }
func (r *QueueRule) GetDescription() string { return "验证待发送队列与传输层参数" }

func (r *QueueRule) Validate(config *Config) []ValidationResult {
	var results []ValidationResult

	if config.MaxPendingMessages <= 0 {
		results = append(results, ValidationResult{
			Level:       ValidationLevelError,
			Field:       "MaxPendingMessages",
			Message:     "待发送队列上限必须大于0",
			Suggestion:  fmt.Sprintf("推荐设置为%d", DefaultMaxPendingMessages),
			AutoFixable: true,
			FixAction: func(c *Config) error {
				c.MaxPendingMessages = DefaultMaxPendingMessages
				return nil
			},
		})
	}

	if config.Transport == nil {
		results = append(results, ValidationResult{
			Level:       ValidationLevelWarning,
			Field:       "Transport",
			Message:     "传输层参数未设置，将使用默认值",
			AutoFixable: true,
			FixAction: func(c *Config) error {
				c.Transport = safe.MergeWithDefaults[wscconfig.WSC](nil, wscconfig.Default())
				return nil
			},
		})
	}

	return results
}
