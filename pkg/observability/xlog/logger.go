package xlog

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

var (
	_ Logger          = (*xlogger)(nil)
	_ Leveler         = (*xlogger)(nil)
	_ LoggerWithLevel = (*xlogger)(nil)
)

type xlogger struct {
	handler        slog.Handler
	levelVar       *slog.LevelVar
	onError        func(error)
	inErrorHandler atomic.Bool // 防止 onError 递归调用
}

func (l *xlogger) Log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.Level(level), msg, attrs)
}

func (l *xlogger) log(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.handler.Enabled(ctx, level) {
		return
	}
	r := slog.NewRecord(time.Now(), level, msg, 0)
	r.AddAttrs(attrs...)
	if err := l.handler.Handle(ctx, r); err != nil {
		l.handleError(err)
	}
}

// handleError 通知 onError
//
// CAS 保护导致并发期间部分错误跳过回调，计数由回调方负责，回调定位为 best-effort 通知。
func (l *xlogger) handleError(err error) {
	if l.onError == nil {
		return
	}
	if l.inErrorHandler.CompareAndSwap(false, true) {
		defer l.inErrorHandler.Store(false)
		l.safeOnError(err)
	}
}

// safeOnError 回调 panic 被捕获，不扩散到调用方
func (l *xlogger) safeOnError(err error) {
	defer func() { _ = recover() }()
	l.onError(err)
}

func (l *xlogger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.Level(LevelDebug), msg, attrs)
}

func (l *xlogger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.Level(LevelInfo), msg, attrs)
}

func (l *xlogger) Notice(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.Level(LevelNotice), msg, attrs)
}

func (l *xlogger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.Level(LevelError), msg, attrs)
}

func (l *xlogger) Fault(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.Level(LevelFault), msg, attrs)
}

func (l *xlogger) SetLevel(level Level) {
	l.levelVar.Set(slog.Level(level))
}

func (l *xlogger) GetLevel() Level {
	return Level(l.levelVar.Level())
}

func (l *xlogger) Enabled(ctx context.Context, level Level) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.handler.Enabled(ctx, slog.Level(level))
}
