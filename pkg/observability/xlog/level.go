package xlog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志级别，与 slog.Level 兼容
type Level slog.Level

// 日志级别常量，Notice/Fault 落在 slog 标准级别之间的空位
const (
	LevelDebug  = Level(slog.LevelDebug)
	LevelInfo   = Level(slog.LevelInfo)
	LevelNotice = Level(slog.LevelInfo + 2)
	LevelError  = Level(slog.LevelError)
	LevelFault  = Level(slog.LevelError + 4)
)

// String 返回级别的字符串表示，非标准级别委托给 slog.Level.String()
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelNotice:
		return "NOTICE"
	case LevelError:
		return "ERROR"
	case LevelFault:
		return "FAULT"
	default:
		return slog.Level(l).String()
	}
}

// MarshalText 实现 encoding.TextMarshaler 接口
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析字符串为日志级别（大小写不敏感，自动 TrimSpace）
// 支持 debug/info/notice/default/error/fault
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "notice", "default":
		return LevelNotice, nil
	case "error":
		return LevelError, nil
	case "fault":
		return LevelFault, nil
	default:
		return LevelInfo, fmt.Errorf("xlog: unknown level %q", s)
	}
}

// replaceLevel 以本包的级别名渲染 slog 的 level 字段（避免输出 "INFO+2"、"ERROR+4"）
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lv, ok := a.Value.Any().(slog.Level); ok {
		return slog.String(slog.LevelKey, Level(lv).String())
	}
	return a
}
