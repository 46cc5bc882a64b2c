package xloger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/omeyang/dvtloger/pkg/observability/xlog"
	"github.com/omeyang/dvtloger/pkg/util/xfile"
	"github.com/omeyang/dvtloger/pkg/util/xkeylock"
)

//go:generate mockgen -source=sink.go -destination=mock_facility_test.go -package=xloger

// Facility 系统日志通道，接收级别与不含时间戳的消息
//
// 实现必须并发安全，且不得阻塞过久：调用在日志写入路径上同步执行。
type Facility interface {
	Emit(sev Severity, message string)
}

// SystemFacility 把记录转发到 xlog 系统日志
type SystemFacility struct {
	logger xlog.Logger
}

// NewSystemFacility 以 logger 作为系统日志后端
func NewSystemFacility(logger xlog.Logger) *SystemFacility {
	return &SystemFacility{logger: logger}
}

// Emit 实现 Facility
func (f *SystemFacility) Emit(sev Severity, message string) {
	if f == nil || f.logger == nil {
		return
	}
	ctx := context.Background()
	level := facilityLevel(sev)
	if !f.logger.Enabled(ctx, level) {
		return
	}
	f.logger.Log(ctx, level, message)
}

// facilityLevel 级别映射：Notice→NOTICE，Info→INFO，Debug→DEBUG，Error→ERROR，Fault→FAULT
func facilityLevel(sev Severity) xlog.Level {
	switch sev {
	case SeverityNotice:
		return xlog.LevelNotice
	case SeverityInfo:
		return xlog.LevelInfo
	case SeverityDebug:
		return xlog.LevelDebug
	case SeverityError:
		return xlog.LevelError
	default:
		return xlog.LevelFault
	}
}

// newDefaultFacility 输出到 w（默认 stderr）的系统日志，subsystem 固定为 "dvtloger"，category 为日志器名称
//
// 写入失败交给 onError，由 Logger 计入 ErrorCount。
func newDefaultFacility(name string, w io.Writer, onError func(error)) (Facility, func() error, error) {
	logger, cleanup, err := xlog.New().
		SetOutput(w).
		SetSubsystem("dvtloger", name).
		SetOnError(onError).
		Build()
	if err != nil {
		return nil, nil, err
	}
	return NewSystemFacility(logger), cleanup, nil
}

// newFileFacility 输出到按大小轮转的系统日志文件
func newFileFacility(name string, rot *systemFileOptions, onError func(error)) (Facility, func() error, error) {
	logger, cleanup, err := xlog.New().
		SetSubsystem("dvtloger", name).
		SetRotation(rot.filename, rot.opts...).
		SetOnError(onError).
		Build()
	if err != nil {
		return nil, nil, err
	}
	return NewSystemFacility(logger), cleanup, nil
}

// fileLocks 进程内按文件路径加锁，同一目录下的多个 Logger 实例共享
var fileLocks = sync.OnceValue(func() xkeylock.Locker {
	l, err := xkeylock.New()
	if err != nil {
		panic(fmt.Sprintf("xloger: create file locker: %v", err))
	}
	return l
})

// appendLine 追加一行到 path：文件非空时先写换行，持锁期间完成打开、写入、关闭
func appendLine(path, line string) (err error) {
	h, err := fileLocks().Acquire(context.Background(), path)
	if err != nil {
		return fmt.Errorf("xloger: lock %s: %w", path, err)
	}
	defer func() { _ = h.Unlock() }()

	if err := xfile.EnsureDirectory(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o640)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() > 0 {
		line = "\n" + line
	}
	_, err = io.WriteString(f, line)
	return err
}

// touchFile 创建空文件（已存在时不修改）
func touchFile(path string) error {
	h, err := fileLocks().Acquire(context.Background(), path)
	if err != nil {
		return err
	}
	defer func() { _ = h.Unlock() }()

	if err := xfile.EnsureDirectory(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o640)
	if err != nil {
		return err
	}
	return f.Close()
}
