package xlog

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/omeyang/dvtloger/pkg/observability/xrotate"
)

// 固定属性键
const (
	KeySubsystem = "subsystem"
	KeyCategory  = "category"
)

// Builder 系统日志配置构建器
type Builder struct {
	output    io.Writer
	levelVar  *slog.LevelVar
	subsystem string
	category  string
	rotator   xrotate.Rotator
	onError   func(error)
	err       error
}

// New 创建配置构建器，默认输出到 stderr、Debug 级别（上游已完成级别过滤）
func New() *Builder {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.Level(LevelDebug))
	return &Builder{
		output:   os.Stderr,
		levelVar: levelVar,
	}
}

// SetOutput 设置日志输出目标，nil 被忽略
func (b *Builder) SetOutput(w io.Writer) *Builder {
	if b.err != nil || w == nil {
		return b
	}
	b.output = w
	return b
}

// SetLevel 设置日志级别
func (b *Builder) SetLevel(level Level) *Builder {
	if b.err != nil {
		return b
	}
	b.levelVar.Set(slog.Level(level))
	return b
}

// SetSubsystem 设置 subsystem 与 category 固定属性（空值不输出）
func (b *Builder) SetSubsystem(subsystem, category string) *Builder {
	if b.err != nil {
		return b
	}
	b.subsystem = subsystem
	b.category = category
	return b
}

// SetRotation 输出到按大小轮转的文件
func (b *Builder) SetRotation(filename string, opts ...xrotate.LumberjackOption) *Builder {
	if b.err != nil {
		return b
	}
	rotator, err := xrotate.NewLumberjack(filename, opts...)
	if err != nil {
		b.err = err
		return b
	}
	b.rotator = rotator
	b.output = rotator
	return b
}

// SetOnError 设置内部错误回调
//
// 回调在写入路径同步执行，应保持轻量；回调内不得向同一 logger 写日志。
func (b *Builder) SetOnError(fn func(error)) *Builder {
	if b.err != nil {
		return b
	}
	b.onError = fn
	return b
}

// Build 构建 Logger 实例
//
// 返回值：
//   - LoggerWithLevel: 日志实例
//   - func() error: 清理函数（关闭轮转文件），可重复调用
//   - error: 配置错误
func (b *Builder) Build() (LoggerWithLevel, func() error, error) {
	if b.err != nil {
		if b.rotator != nil {
			_ = b.rotator.Close()
		}
		return nil, nil, b.err
	}

	var handler slog.Handler = slog.NewTextHandler(b.output, &slog.HandlerOptions{
		Level:       b.levelVar,
		ReplaceAttr: replaceLevel,
	})

	var fixed []slog.Attr
	if b.subsystem != "" {
		fixed = append(fixed, slog.String(KeySubsystem, b.subsystem))
	}
	if b.category != "" {
		fixed = append(fixed, slog.String(KeyCategory, b.category))
	}
	if len(fixed) > 0 {
		handler = handler.WithAttrs(fixed)
	}

	logger := &xlogger{
		handler:  handler,
		levelVar: b.levelVar,
		onError:  b.onError,
	}
	return logger, b.createCleanup(), nil
}

func (b *Builder) createCleanup() func() error {
	var once sync.Once
	rotator := b.rotator
	return func() error {
		var err error
		once.Do(func() {
			if rotator != nil {
				err = rotator.Close()
			}
		})
		return err
	}
}
