package xlog

import (
	"context"
	"log/slog"
)

// Logger 系统日志接口
//
// 方法签名只接受 slog.Attr，保证类型安全。
type Logger interface {
	// Log 以指定级别记录一条日志
	Log(ctx context.Context, level Level, msg string, attrs ...slog.Attr)

	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Notice(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)
	Fault(ctx context.Context, msg string, attrs ...slog.Attr)

	// Enabled 检查指定级别是否启用
	Enabled(ctx context.Context, level Level) bool
}

// Leveler 级别控制接口
type Leveler interface {
	// SetLevel 动态设置日志级别
	SetLevel(level Level)

	// GetLevel 获取当前日志级别
	GetLevel() Level
}

// LoggerWithLevel 组合接口：Logger + Leveler，Build() 返回此接口
type LoggerWithLevel interface {
	Logger
	Leveler
}
