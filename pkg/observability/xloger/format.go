package xloger

import (
	"strconv"
	"strings"
	"time"
)

// TimestampLayout 日志行时间戳布局（本地时间，毫秒精度）
const TimestampLayout = "2006-01-02 15:04:05.000"

// 上下文与内容之间的分隔
const contextArrow = " => "

// Record 一次日志调用的全部输入，格式化后即丢弃
type Record struct {
	Severity  Severity
	Time      time.Time
	Site      Site
	Goroutine uint64
	Values    []Value
	Separator string
}

// formatted 同一条记录的两种渲染
type formatted struct {
	// line 写入文件与标准输出的完整行
	line string
	// message 交给系统日志通道的消息（不含时间戳和名称，通道自带这些信息）
	message string
}

// format 按 show 开关渲染记录
//
// 行布局：<时间戳> [<名称>] [<图标>] [<文件>:<行号>] [<线程>] <函数> => <内容>，
// 关闭的字段连同方括号一起省略；头部为空时不输出 " => "。
func format(name string, show ShowFlags, rec Record) formatted {
	ctx := contextPrefix(show, rec)
	body := payload(rec.Values, rec.Separator)

	head := make([]string, 0, 3)
	if show.Timestamp {
		head = append(head, rec.Time.Local().Format(TimestampLayout))
	}
	if name != "" {
		head = append(head, "["+name+"]")
	}
	if ctx != "" {
		head = append(head, ctx)
	}
	return formatted{
		line:    joinArrow(strings.Join(head, " "), body),
		message: joinArrow(ctx, body),
	}
}

func joinArrow(head, body string) string {
	if head == "" {
		return body
	}
	return head + contextArrow + body
}

// contextPrefix 渲染 [图标] [文件:行号] [线程] 函数
func contextPrefix(show ShowFlags, rec Record) string {
	parts := make([]string, 0, 4)
	if show.Level {
		if g := rec.Severity.Glyph(); g != "" {
			parts = append(parts, "["+g+"]")
		}
	}
	if loc := location(show, rec.Site); loc != "" {
		parts = append(parts, loc)
	}
	if show.Thread {
		parts = append(parts, threadDescriptor(rec.Goroutine))
	}
	if show.Function && rec.Site.Function != "" {
		parts = append(parts, rec.Site.Function)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// location 关闭文件名但打开行号时退化为 "line:<n>"
func location(show ShowFlags, site Site) string {
	if show.File {
		base := site.FileBase()
		if base == "" {
			base = "???"
		}
		if show.Line {
			return "[" + base + ":" + strconv.Itoa(site.Line) + "]"
		}
		return "[" + base + "]"
	}
	if show.Line {
		return "line:" + strconv.Itoa(site.Line)
	}
	return ""
}

// payload 以 sep 连接各值的文本，nil 值输出 "<nil>"
func payload(values []Value, sep string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return valueText(values[0])
	}
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(valueText(v))
	}
	return b.String()
}

func valueText(v Value) (s string) {
	if v == nil {
		return "<nil>"
	}
	defer func() {
		if r := recover(); r != nil {
			s = "<panic>"
		}
	}()
	return v.String()
}
