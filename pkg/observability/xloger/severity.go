package xloger

import (
	"fmt"
	"strings"
)

// Severity 日志级别，数值越大越严重
//
// 注意顺序：Notice < Info < Debug < Error < Fault。
// Debug 排在 Info 之后，阈值设为 Debug 时只输出 Debug/Error/Fault。
type Severity uint8

// 级别常量
const (
	SeverityNotice Severity = iota
	SeverityInfo
	SeverityDebug
	SeverityError
	SeverityFault
	// SeverityOff 仅用作阈值，关闭全部输出
	SeverityOff
)

var severityNames = [...]string{
	SeverityNotice: "notice",
	SeverityInfo:   "info",
	SeverityDebug:  "debug",
	SeverityError:  "error",
	SeverityFault:  "fault",
	SeverityOff:    "off",
}

var severityGlyphs = [...]string{
	SeverityNotice: "📝",
	SeverityInfo:   "📠",
	SeverityDebug:  "📎",
	SeverityError:  "✖️",
	SeverityFault:  "💥",
}

// Severities 返回所有可输出的级别（不含 Off），按严重程度升序
func Severities() []Severity {
	return []Severity{SeverityNotice, SeverityInfo, SeverityDebug, SeverityError, SeverityFault}
}

// String 返回小写级别名，同时也是日志文件名前缀
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("severity(%d)", uint8(s))
}

// Glyph 返回级别图标，Off 与未知级别返回空串
func (s Severity) Glyph() string {
	if int(s) < len(severityGlyphs) {
		return severityGlyphs[s]
	}
	return ""
}

// Valid 报告 s 是否为已定义的级别（含 Off）
func (s Severity) Valid() bool {
	return s <= SeverityOff
}

// ParseSeverity 解析级别名（大小写不敏感），"all"/"default" 视为 Notice
func ParseSeverity(name string) (Severity, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "all", "default":
		return SeverityNotice, nil
	default:
		for i, s := range severityNames {
			if s == n {
				return Severity(i), nil
			}
		}
	}
	return SeverityOff, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
}

// MarshalText 实现 encoding.TextMarshaler
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeverity, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (s *Severity) UnmarshalText(data []byte) error {
	parsed, err := ParseSeverity(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ShouldEmit 报告在阈值 threshold 下 sev 级别的记录是否输出
func ShouldEmit(threshold, sev Severity) bool {
	return threshold <= sev && sev < SeverityOff
}
