package xloger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/omeyang/dvtloger/pkg/observability/xrotate"
	"github.com/omeyang/dvtloger/pkg/util/xarchive"
	"github.com/omeyang/dvtloger/pkg/util/xfile"
)

// Logger 带调用点上下文的日志器
//
// 每次调用同步完成格式化、控制台/系统日志输出与文件追加，不持有文件句柄。
// 所有方法并发安全。
type Logger struct {
	mu  sync.RWMutex
	cfg Config

	name    string
	dir     string
	clock   func() time.Time
	onError func(error)

	consoleMu sync.Mutex
	console   io.Writer

	facility      Facility
	closeFacility func() error
	closeOnce     sync.Once

	errorCount     atomic.Uint64
	inErrorHandler atomic.Bool
}

// New 创建名为 name 的日志器，日志目录为 <根目录>/<name>，目录在首次写入时创建
func New(name string, opts ...Option) (*Logger, error) {
	o := options{clock: time.Now, console: os.Stdout}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	cfg := DefaultConfig(name)
	if o.config != nil {
		cfg = *o.config
		cfg.Name = name
	}
	if o.directory != "" {
		cfg.Directory = o.directory
	}
	if cfg.Directory == "" {
		cfg.Directory = DefaultRoot()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(cfg.Directory)
	if err != nil {
		return nil, fmt.Errorf("xloger: resolve root %q: %w", cfg.Directory, err)
	}
	dir, err := xfile.SafeJoin(root, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidName, name, err)
	}
	cfg.Directory = root

	l := &Logger{
		cfg:     cfg,
		name:    name,
		dir:     dir,
		clock:   o.clock,
		onError: o.onError,
		console: o.console,
	}

	switch {
	case o.facility != nil:
		l.facility = o.facility
	case o.sysFile != nil:
		l.facility, l.closeFacility, err = newFileFacility(name, o.sysFile, l.facilityError)
	default:
		l.facility, l.closeFacility, err = newDefaultFacility(name, o.sysOutput, l.facilityError)
	}
	if err != nil {
		return nil, fmt.Errorf("xloger: system facility: %w", err)
	}
	return l, nil
}

// Name 返回日志器名称
func (l *Logger) Name() string {
	return l.name
}

// Notice 以 Notice 级别输出，返回输出到控制台的行（被控制台阈值过滤时返回空串）
func (l *Logger) Notice(values ...Value) string {
	return l.logDefault(SeverityNotice, Caller(1), values)
}

// Info 以 Info 级别输出
func (l *Logger) Info(values ...Value) string {
	return l.logDefault(SeverityInfo, Caller(1), values)
}

// Debug 以 Debug 级别输出
func (l *Logger) Debug(values ...Value) string {
	return l.logDefault(SeverityDebug, Caller(1), values)
}

// Error 以 Error 级别输出
func (l *Logger) Error(values ...Value) string {
	return l.logDefault(SeverityError, Caller(1), values)
}

// Fault 以 Fault 级别输出
func (l *Logger) Fault(values ...Value) string {
	return l.logDefault(SeverityFault, Caller(1), values)
}

// Logf 以 sev 级别输出格式化文本
func (l *Logger) Logf(sev Severity, format string, args ...any) string {
	return l.logDefault(sev, Caller(1), []Value{Sprintf(format, args...)})
}

func (l *Logger) logDefault(sev Severity, site Site, values []Value) string {
	l.mu.RLock()
	sep := l.cfg.Separator
	l.mu.RUnlock()
	return l.Log(sev, site, sep, values...)
}

// Log 以显式调用点和分隔符输出一条记录
//
// 控制台阈值与文件阈值各自独立判定：被控制台阈值过滤的记录仍可能写入文件，此时返回空串。
// 文件与控制台写入失败不影响返回值，只计入 ErrorCount。
func (l *Logger) Log(sev Severity, site Site, sep string, values ...Value) string {
	if sev >= SeverityOff {
		return ""
	}
	l.mu.RLock()
	cfg := l.cfg
	l.mu.RUnlock()

	toConsole := ShouldEmit(cfg.ConsoleLevel, sev)
	toFile := ShouldEmit(cfg.FileLevel, sev)
	if !toConsole && !toFile {
		return ""
	}

	rec := Record{
		Severity:  sev,
		Time:      l.clock(),
		Site:      site,
		Values:    values,
		Separator: sep,
	}
	if cfg.Show.Thread {
		rec.Goroutine = goroutineID()
	}
	out := format(cfg.Name, cfg.Show, rec)

	if toFile {
		path := filepath.Join(l.dir, cfg.FileNameFormat.BaseName(sev.String(), rec.Time))
		if err := appendLine(path, out.line); err != nil {
			l.handleError(fmt.Errorf("xloger: append %s: %w", path, err))
		}
	}
	if !toConsole {
		return ""
	}
	if cfg.SystemLog {
		l.emitFacility(sev, out.message)
	} else {
		l.writeConsole(out.line)
	}
	return out.line
}

func (l *Logger) writeConsole(line string) {
	l.consoleMu.Lock()
	defer l.consoleMu.Unlock()
	if _, err := io.WriteString(l.console, line+"\n"); err != nil {
		l.handleError(fmt.Errorf("xloger: console: %w", err))
	}
}

func (l *Logger) emitFacility(sev Severity, message string) {
	defer func() {
		if r := recover(); r != nil {
			l.handleError(fmt.Errorf("xloger: facility panic: %v", r))
		}
	}()
	l.facility.Emit(sev, message)
}

func (l *Logger) facilityError(err error) {
	l.handleError(fmt.Errorf("xloger: facility: %w", err))
}

// handleError 计数并通知 onError；回调期间产生的错误只计数不回调
func (l *Logger) handleError(err error) {
	l.errorCount.Add(1)
	if l.onError == nil {
		return
	}
	if !l.inErrorHandler.CompareAndSwap(false, true) {
		return
	}
	defer l.inErrorHandler.Store(false)
	defer func() {
		if r := recover(); r != nil {
			l.errorCount.Add(1)
		}
	}()
	l.onError(err)
}

// ErrorCount 返回累计的内部错误数（文件写入、控制台写入、系统日志、清理）
func (l *Logger) ErrorCount() uint64 {
	return l.errorCount.Load()
}

// Close 关闭由 Logger 创建的系统日志文件，可重复调用。日志调用在 Close 之后仍可使用。
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.closeFacility != nil {
			err = l.closeFacility()
		}
	})
	return err
}

// Config 返回当前配置快照
func (l *Logger) Config() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

// SetConsoleLevel 设置控制台（或系统日志）阈值
func (l *Logger) SetConsoleLevel(sev Severity) error {
	if !sev.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSeverity, sev)
	}
	l.mu.Lock()
	l.cfg.ConsoleLevel = sev
	l.mu.Unlock()
	return nil
}

// SetFileLevel 设置文件阈值
func (l *Logger) SetFileLevel(sev Severity) error {
	if !sev.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSeverity, sev)
	}
	l.mu.Lock()
	l.cfg.FileLevel = sev
	l.mu.Unlock()
	return nil
}

// SetFileNameFormat 解析并设置文件名格式（如 "Y-M-D"），无效时保留原值并返回 ErrInvalidFormat
func (l *Logger) SetFileNameFormat(s string) error {
	f, err := xrotate.ParseFormat(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	l.mu.Lock()
	l.cfg.FileNameFormat = f
	l.mu.Unlock()
	return nil
}

// SetMaxFiles 设置每个级别保留的文件数；调大时立即执行一次清理
func (l *Logger) SetMaxFiles(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxFiles, n)
	}
	l.mu.Lock()
	increased := n > l.cfg.MaxFiles
	l.cfg.MaxFiles = n
	l.mu.Unlock()
	if increased {
		l.AutoClean()
	}
	return nil
}

// SetFileExpire 设置文件过期时长；调大时立即执行一次清理
func (l *Logger) SetFileExpire(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidExpire, d)
	}
	l.mu.Lock()
	increased := d > l.cfg.FileExpire
	l.cfg.FileExpire = d
	l.mu.Unlock()
	if increased {
		l.AutoClean()
	}
	return nil
}

// SetShow 设置上下文字段开关
func (l *Logger) SetShow(show ShowFlags) {
	l.mu.Lock()
	l.cfg.Show = show
	l.mu.Unlock()
}

// SetSystemLog 切换控制台输出与系统日志通道
func (l *Logger) SetSystemLog(on bool) {
	l.mu.Lock()
	l.cfg.SystemLog = on
	l.mu.Unlock()
}

// SetSeparator 设置默认分隔符
func (l *Logger) SetSeparator(sep string) {
	l.mu.Lock()
	l.cfg.Separator = sep
	l.mu.Unlock()
}

// Apply 一次性应用 cfg（Name 与 Directory 除外）
//
// 先整体校验，任一字段无效时不做任何修改；MaxFiles 或 FileExpire 调大时执行一次清理。
func (l *Logger) Apply(cfg Config) error {
	cfg.Name = l.name
	if err := cfg.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	increased := cfg.MaxFiles > l.cfg.MaxFiles || cfg.FileExpire > l.cfg.FileExpire
	cfg.Directory = l.cfg.Directory
	l.cfg = cfg
	l.mu.Unlock()

	if increased {
		l.AutoClean()
	}
	return nil
}

// Directory 返回本日志器的日志目录
func (l *Logger) Directory() string {
	return l.dir
}

// CurrentFilePath 返回 sev 级别当前周期的文件路径，文件不存在时创建空文件
func (l *Logger) CurrentFilePath(sev Severity) string {
	if sev >= SeverityOff {
		return ""
	}
	l.mu.RLock()
	f := l.cfg.FileNameFormat
	l.mu.RUnlock()

	path := filepath.Join(l.dir, f.BaseName(sev.String(), l.clock()))
	if err := touchFile(path); err != nil {
		l.handleError(fmt.Errorf("xloger: create %s: %w", path, err))
	}
	return path
}

// FilePaths 返回目录中全部日志文件的绝对路径，按路径排序
func (l *Logger) FilePaths() []string {
	names, err := xfile.ListFiles(l.dir, isLogFile)
	if err != nil {
		l.handleError(fmt.Errorf("xloger: list %s: %w", l.dir, err))
		return []string{}
	}
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(l.dir, name)
	}
	sort.Strings(paths)
	return paths
}

var severityMatchers = func() []func(string) bool {
	ms := make([]func(string) bool, 0, len(Severities()))
	for _, sev := range Severities() {
		ms = append(ms, xrotate.MatchPrefix(sev.String()))
	}
	return ms
}()

func isLogFile(name string) bool {
	for _, match := range severityMatchers {
		if match(name) {
			return true
		}
	}
	return false
}

// CleanAll 删除整个日志目录，返回删除后是否已无日志文件
func (l *Logger) CleanAll() bool {
	if err := os.RemoveAll(l.dir); err != nil {
		l.handleError(fmt.Errorf("xloger: remove %s: %w", l.dir, err))
	}
	return len(l.FilePaths()) == 0
}

// AutoClean 按当前 MaxFiles/FileExpire 对每个级别执行清理，返回被删除的文件
func (l *Logger) AutoClean() []string {
	l.mu.RLock()
	policy := xrotate.Policy{MaxFiles: l.cfg.MaxFiles, Expire: l.cfg.FileExpire}
	l.mu.RUnlock()

	now := l.clock()
	var removed []string
	for _, sev := range Severities() {
		removed = append(removed, policy.Enforce(l.dir, sev.String(), now)...)
	}
	return removed
}

// Archive 把全部日志文件打包为 <目录>.zip，progress 可为 nil
func (l *Logger) Archive(ctx context.Context, progress func(float64)) (string, error) {
	return xarchive.Zip(ctx, l.dir, l.FilePaths(), progress)
}
