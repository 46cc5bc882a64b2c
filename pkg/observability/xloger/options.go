package xloger

import (
	"io"
	"time"

	"github.com/omeyang/dvtloger/pkg/observability/xrotate"
)

// Option Logger 构造选项
type Option func(*options)

type options struct {
	directory string
	clock     func() time.Time
	console   io.Writer
	facility  Facility
	sysFile   *systemFileOptions
	sysOutput io.Writer
	config    *Config
	onError   func(error)
}

type systemFileOptions struct {
	filename string
	opts     []xrotate.LumberjackOption
}

// WithDirectory 覆盖日志根目录
func WithDirectory(dir string) Option {
	return func(o *options) { o.directory = dir }
}

// WithClock 替换时间源，用于测试
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithConsole 替换控制台输出（默认 os.Stdout）
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.console = w
		}
	}
}

// WithFacility 替换系统日志通道（默认输出到 stderr 的 xlog）
func WithFacility(f Facility) Option {
	return func(o *options) {
		if f != nil {
			o.facility = f
		}
	}
}

// WithSystemLogFile 系统日志通道输出到按大小轮转的文件，Logger.Close 时关闭
func WithSystemLogFile(filename string, opts ...xrotate.LumberjackOption) Option {
	return func(o *options) {
		o.sysFile = &systemFileOptions{filename: filename, opts: opts}
	}
}

// WithSystemLogOutput 默认系统日志通道的输出目标（默认 os.Stderr），与 WithSystemLogFile 同时设置时以文件为准
func WithSystemLogOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.sysOutput = w
		}
	}
}

// WithConfig 使用完整配置初始化，配置中的 Name 被 New 的 name 参数覆盖
func WithConfig(cfg Config) Option {
	return func(o *options) { o.config = &cfg }
}

// WithOnError 接收文件写入、清理等内部错误。回调同步执行，不得向同一 Logger 写日志。
func WithOnError(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}
