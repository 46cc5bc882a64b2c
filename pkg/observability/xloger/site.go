package xloger

import (
	"bytes"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Site 调用点
type Site struct {
	File     string
	Line     int
	Function string
}

// Caller 返回调用栈上 skip 层的调用点，skip=0 为 Caller 的调用方
func Caller(skip int) Site {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Site{}
	}
	site := Site{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		site.Function = shortFuncName(fn.Name())
	}
	return site
}

// shortFuncName 去掉导入路径，保留 "pkg.Func" / "pkg.(*T).Method"
func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// FileBase 返回调用点文件的基本名
func (s Site) FileBase() string {
	if s.File == "" {
		return ""
	}
	return filepath.Base(s.File)
}

// mainGoroutineID 运行 main 函数的 goroutine 编号
const mainGoroutineID = 1

var goroutinePrefix = []byte("goroutine ")

// goroutineID 从当前栈信息首行 "goroutine 123 [running]:" 解析 goroutine 编号，失败返回 0
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// threadDescriptor 主 goroutine 输出 "[Main]"，其它输出 "[Global]<0x十六进制编号>"
func threadDescriptor(gid uint64) string {
	if gid == mainGoroutineID {
		return "[Main]"
	}
	return "[Global]<0x" + strconv.FormatUint(gid, 16) + ">"
}
