package xloger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

var (
	defaultLogger atomic.Pointer[Logger]
	defaultMu     sync.Mutex
	defaultOnce   sync.Once

	// buildDefault 构造默认日志器，测试中替换以模拟失败
	buildDefault = func(opts ...Option) (*Logger, error) { return New(DefaultName, opts...) }
)

// initDefault 持锁执行 once.Do，与 ResetDefault 重置 defaultOnce 互斥
func initDefault() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultOnce.Do(func() {
		l, err := buildDefault()
		if err == nil {
			defaultLogger.Store(l)
			return
		}
		// 默认根目录不可用时退回临时目录
		fmt.Fprintf(os.Stderr, "xloger: failed to build default logger: %v, using temp dir\n", err)
		fl, ferr := buildDefault(WithDirectory(os.TempDir()))
		if ferr != nil {
			fl = fallbackLogger()
			fl.handleError(fmt.Errorf("xloger: build fallback logger: %w", ferr))
		}
		fl.handleError(fmt.Errorf("xloger: build default logger: %w", err))
		defaultLogger.Store(fl)
	})
	return defaultLogger.Load()
}

// fallbackLogger 不经校验直接构造、以临时目录为根的日志器，系统日志通道为空操作
func fallbackLogger() *Logger {
	cfg := DefaultConfig(DefaultName)
	cfg.Directory = os.TempDir()
	return &Logger{
		cfg:      cfg,
		name:     DefaultName,
		dir:      filepath.Join(cfg.Directory, DefaultName),
		clock:    time.Now,
		console:  os.Stdout,
		facility: NewSystemFacility(nil),
	}
}

// Default 返回进程级默认日志器（名称 "default"），首次调用时创建
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return initDefault()
}

// SetDefault 替换默认日志器，nil 被忽略
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOnce.Do(func() {})
	defaultLogger.Store(l)
}

// ResetDefault 清除默认日志器，下次 Default 重新创建（用于测试）
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger.Store(nil)
	defaultOnce = sync.Once{}
}

// Notice 使用默认日志器输出
func Notice(values ...Value) string {
	return Default().logDefault(SeverityNotice, Caller(1), values)
}

// Info 使用默认日志器输出
func Info(values ...Value) string {
	return Default().logDefault(SeverityInfo, Caller(1), values)
}

// Debug 使用默认日志器输出
func Debug(values ...Value) string {
	return Default().logDefault(SeverityDebug, Caller(1), values)
}

// Error 使用默认日志器输出
func Error(values ...Value) string {
	return Default().logDefault(SeverityError, Caller(1), values)
}

// Fault 使用默认日志器输出
func Fault(values ...Value) string {
	return Default().logDefault(SeverityFault, Caller(1), values)
}

// Logf 使用默认日志器输出格式化文本
func Logf(sev Severity, format string, args ...any) string {
	return Default().logDefault(sev, Caller(1), []Value{Sprintf(format, args...)})
}
