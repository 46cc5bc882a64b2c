package xrotate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Token 文件名中的一个日期分量
type Token uint8

// 支持的日期分量，声明顺序即输出顺序
const (
	TokenYear Token = 1 << iota
	TokenMonth
	TokenWeek
	TokenDay
)

// LogExt 日志文件扩展名
const LogExt = ".log"

var canonicalTokens = [...]struct {
	tok  Token
	name string
}{
	{TokenYear, "Y"},
	{TokenMonth, "M"},
	{TokenWeek, "WY"},
	{TokenDay, "D"},
}

// String 返回分量的格式串写法（Y/M/WY/D）
func (t Token) String() string {
	for _, c := range canonicalTokens {
		if c.tok == t {
			return c.name
		}
	}
	return "Token(" + strconv.Itoa(int(t)) + ")"
}

// Format 启用的日期分量集合
//
// 零值表示不附加任何日期分量，文件名为 "<prefix>.log"。
type Format uint8

// DefaultFormat 默认按"年-周"滚动，一个文件保存一周
const DefaultFormat = Format(TokenYear | TokenWeek)

// ParseFormat 解析以 "-" 分隔的格式串，如 "Y-WY"、"Y-M-D"
//
// 分量精确匹配（区分大小写，不裁剪空白），重复分量合并；空串返回零值 Format。
// 任意分量不属于 {Y, M, WY, D}（包括 "Y--M" 这类空分量、"y"、" WY"）时整体拒绝，返回 [ErrInvalidFormat]。
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return 0, nil
	}
	var f Format
	for part := range strings.SplitSeq(s, "-") {
		tok, ok := lookupToken(part)
		if !ok {
			return 0, fmt.Errorf("%w: unknown token %q in %q", ErrInvalidFormat, part, s)
		}
		f |= Format(tok)
	}
	return f, nil
}

func lookupToken(name string) (Token, bool) {
	for _, c := range canonicalTokens {
		if c.name == name {
			return c.tok, true
		}
	}
	return 0, false
}

// Has 报告分量是否启用
func (f Format) Has(t Token) bool {
	return f&Format(t) != 0
}

// String 返回规范顺序的格式串，如 "Y-WY"
func (f Format) String() string {
	parts := make([]string, 0, len(canonicalTokens))
	for _, c := range canonicalTokens {
		if f.Has(c.tok) {
			parts = append(parts, c.name)
		}
	}
	return strings.Join(parts, "-")
}

// MarshalText 实现 encoding.TextMarshaler
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (f *Format) UnmarshalText(data []byte) error {
	parsed, err := ParseFormat(string(data))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// BaseName 生成 now 所在周期的文件名："<prefix>-<Y>-<M>-<WY>-<D>.log"（仅含启用的分量，数字不补零）
//
// WY 为 ISO 周序号。启用 WY 且未启用 M 时，Y 取 ISO 周所属年份，
// 保证跨年的那一周仍落在同一个文件里。
func (f Format) BaseName(prefix string, now time.Time) string {
	isoYear, week := now.ISOWeek()
	year := now.Year()
	if f.Has(TokenWeek) && !f.Has(TokenMonth) {
		year = isoYear
	}

	var b strings.Builder
	b.Grow(len(prefix) + 20)
	b.WriteString(prefix)
	for _, c := range canonicalTokens {
		if !f.Has(c.tok) {
			continue
		}
		var n int
		switch c.tok {
		case TokenYear:
			n = year
		case TokenMonth:
			n = int(now.Month())
		case TokenWeek:
			n = week
		case TokenDay:
			n = now.Day()
		}
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(n))
	}
	b.WriteString(LogExt)
	return b.String()
}

// MatchPrefix 返回匹配 prefix 所有周期文件的判定函数：
// "<prefix>.log" 或 "<prefix>-*.log"。
func MatchPrefix(prefix string) func(name string) bool {
	return func(name string) bool {
		if !strings.HasSuffix(name, LogExt) {
			return false
		}
		return name == prefix+LogExt || strings.HasPrefix(name, prefix+"-")
	}
}
