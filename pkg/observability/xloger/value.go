package xloger

import (
	"fmt"
	"strconv"
	"time"
)

// Value 日志输出值，只要求能转成文本
type Value = fmt.Stringer

type stringValue string

func (v stringValue) String() string { return string(v) }

// String 文本值
func String(s string) Value { return stringValue(s) }

// Strings 把多个字符串转为 Value 列表
func Strings(ss ...string) []Value {
	vs := make([]Value, len(ss))
	for i, s := range ss {
		vs[i] = stringValue(s)
	}
	return vs
}

type intValue int64

func (v intValue) String() string { return strconv.FormatInt(int64(v), 10) }

// Int 整数值
func Int(n int) Value { return intValue(n) }

// Int64 64 位整数值
func Int64(n int64) Value { return intValue(n) }

type uintValue uint64

func (v uintValue) String() string { return strconv.FormatUint(uint64(v), 10) }

// Uint64 无符号整数值
func Uint64(n uint64) Value { return uintValue(n) }

type floatValue float64

func (v floatValue) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// Float64 浮点值，使用最短表示
func Float64(f float64) Value { return floatValue(f) }

type boolValue bool

func (v boolValue) String() string { return strconv.FormatBool(bool(v)) }

// Bool 布尔值
func Bool(b bool) Value { return boolValue(b) }

type errValue struct{ err error }

func (v errValue) String() string {
	if v.err == nil {
		return "<nil>"
	}
	return v.err.Error()
}

// Err 错误值，nil 输出 "<nil>"
func Err(err error) Value { return errValue{err: err} }

// Duration 时长值
func Duration(d time.Duration) Value { return d }

// Time 时间值，使用日志时间戳布局
func Time(t time.Time) Value { return timeValue(t) }

type timeValue time.Time

func (v timeValue) String() string { return time.Time(v).Format(TimestampLayout) }

type lazyValue struct {
	format string
	args   []any
}

func (v lazyValue) String() string { return fmt.Sprintf(v.format, v.args...) }

// Sprintf 延迟格式化值，只在记录实际输出时才格式化
func Sprintf(format string, args ...any) Value {
	return lazyValue{format: format, args: args}
}

type funcValue func() string

func (f funcValue) String() string {
	if f == nil {
		return ""
	}
	return f()
}

// Func 延迟求值，fn 只在记录实际输出时调用
func Func(fn func() string) Value { return funcValue(fn) }
