package xloger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/omeyang/dvtloger/pkg/observability/xrotate"
)

// 默认值
const (
	DefaultMaxFiles   = 7
	DefaultFileExpire = 7 * 24 * time.Hour
	DefaultSeparator  = " "
	DefaultName       = "default"

	// EnvRoot 覆盖默认日志根目录的环境变量
	EnvRoot = "DVTLOGER_ROOT"
)

// ShowFlags 日志行上下文字段开关
type ShowFlags struct {
	Timestamp bool
	Level     bool
	Thread    bool
	Function  bool
	Line      bool
	File      bool
}

// ShowAll 打开全部上下文字段
func ShowAll() ShowFlags {
	return ShowFlags{Timestamp: true, Level: true, Thread: true, Function: true, Line: true, File: true}
}

// Config 日志器配置
type Config struct {
	// Name 日志器名称，同时是根目录下的子目录名
	Name string
	// Directory 日志根目录，空串表示使用默认根目录
	Directory string

	ConsoleLevel Severity
	FileLevel    Severity
	Show         ShowFlags

	FileNameFormat xrotate.Format
	// MaxFiles 每个级别最多保留的文件数，至少为 1
	MaxFiles int
	// FileExpire 文件超过该时长后才允许被清理
	FileExpire time.Duration

	// SystemLog 为 true 时控制台输出改走系统日志通道
	SystemLog bool
	// Separator 多个输出值之间的分隔符
	Separator string
}

// DefaultConfig 返回 name 的默认配置
func DefaultConfig(name string) Config {
	return Config{
		Name:           name,
		ConsoleLevel:   SeverityNotice,
		FileLevel:      SeverityError,
		Show:           ShowAll(),
		FileNameFormat: xrotate.DefaultFormat,
		MaxFiles:       DefaultMaxFiles,
		FileExpire:     DefaultFileExpire,
		Separator:      DefaultSeparator,
	}
}

// Validate 检查配置取值
func (c Config) Validate() error {
	if err := validateName(c.Name); err != nil {
		return err
	}
	if !c.ConsoleLevel.Valid() || !c.FileLevel.Valid() {
		return fmt.Errorf("%w: console=%d file=%d", ErrInvalidSeverity, c.ConsoleLevel, c.FileLevel)
	}
	if c.MaxFiles < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxFiles, c.MaxFiles)
	}
	if c.FileExpire < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidExpire, c.FileExpire)
	}
	return nil
}

// validateName 名称只能是单个路径段
func validateName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// DefaultRoot 返回默认日志根目录：$DVTLOGER_ROOT，否则 $HOME/Documents/DVTLoger
func DefaultRoot() string {
	if root := os.Getenv(EnvRoot); root != "" {
		return root
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.TempDir()
	}
	return filepath.Join(home, "Documents", "DVTLoger")
}
