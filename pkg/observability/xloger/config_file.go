package xloger

import (
	"fmt"
	"math"
	"time"

	"github.com/omeyang/dvtloger/pkg/config/xconf"
	"github.com/omeyang/dvtloger/pkg/observability/xrotate"
)

// fileConfig 配置文件的键布局，未出现的键保留默认值
type fileConfig struct {
	Name              string  `koanf:"name"`
	Directory         string  `koanf:"directory"`
	ConsoleLevel      string  `koanf:"console_level"`
	FileLevel         string  `koanf:"file_level"`
	ShowTimestamp     bool    `koanf:"show_timestamp"`
	ShowLevel         bool    `koanf:"show_level"`
	ShowThread        bool    `koanf:"show_thread"`
	ShowFunction      bool    `koanf:"show_function"`
	ShowLine          bool    `koanf:"show_line"`
	ShowFile          bool    `koanf:"show_file"`
	FileNameFormat    string  `koanf:"file_name_format"`
	MaxFiles          int     `koanf:"max_files"`
	FileExpireSeconds float64 `koanf:"file_expire_seconds"`
	SystemLog         bool    `koanf:"system_log"`
	Separator         string  `koanf:"separator"`
}

func toFileConfig(c Config) fileConfig {
	return fileConfig{
		Name:              c.Name,
		Directory:         c.Directory,
		ConsoleLevel:      c.ConsoleLevel.String(),
		FileLevel:         c.FileLevel.String(),
		ShowTimestamp:     c.Show.Timestamp,
		ShowLevel:         c.Show.Level,
		ShowThread:        c.Show.Thread,
		ShowFunction:      c.Show.Function,
		ShowLine:          c.Show.Line,
		ShowFile:          c.Show.File,
		FileNameFormat:    c.FileNameFormat.String(),
		MaxFiles:          c.MaxFiles,
		FileExpireSeconds: c.FileExpire.Seconds(),
		SystemLog:         c.SystemLog,
		Separator:         c.Separator,
	}
}

func (fc fileConfig) toConfig() (Config, error) {
	console, err := ParseSeverity(fc.ConsoleLevel)
	if err != nil {
		return Config{}, fmt.Errorf("console_level: %w", err)
	}
	file, err := ParseSeverity(fc.FileLevel)
	if err != nil {
		return Config{}, fmt.Errorf("file_level: %w", err)
	}
	format, err := xrotate.ParseFormat(fc.FileNameFormat)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	expire, err := expireDuration(fc.FileExpireSeconds)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Name:         fc.Name,
		Directory:    fc.Directory,
		ConsoleLevel: console,
		FileLevel:    file,
		Show: ShowFlags{
			Timestamp: fc.ShowTimestamp,
			Level:     fc.ShowLevel,
			Thread:    fc.ShowThread,
			Function:  fc.ShowFunction,
			Line:      fc.ShowLine,
			File:      fc.ShowFile,
		},
		FileNameFormat: format,
		MaxFiles:       fc.MaxFiles,
		FileExpire:     expire,
		SystemLog:      fc.SystemLog,
		Separator:      fc.Separator,
	}
	return cfg, cfg.Validate()
}

// expireDuration 秒数转换为时长，超出 time.Duration 范围时取最大值
func expireDuration(seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || seconds < 0 {
		return 0, fmt.Errorf("%w: %v seconds", ErrInvalidExpire, seconds)
	}
	ns := seconds * float64(time.Second)
	// float64(math.MaxInt64) 恰为 2^63，等于时即已溢出
	if ns >= float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64), nil
	}
	return time.Duration(ns), nil
}

// DecodeConfig 从已加载的配置中读取 section 下的日志器配置，缺失的键取 base 的值
func DecodeConfig(src *xconf.Config, section string, base Config) (Config, error) {
	fc := toFileConfig(base)
	if err := src.Unmarshal(section, &fc); err != nil {
		return Config{}, err
	}
	return fc.toConfig()
}

// LoadConfig 从 YAML/JSON 文件顶层读取日志器配置，缺失的键取默认值
func LoadConfig(path string) (Config, error) {
	return LoadConfigSection(path, "")
}

// LoadConfigSection 从文件的 section 路径（如 "logging.network"）读取日志器配置
func LoadConfigSection(path, section string) (Config, error) {
	src, err := xconf.New(path)
	if err != nil {
		return Config{}, err
	}
	return DecodeConfig(src, section, DefaultConfig(DefaultName))
}

// NewFromFile 按配置文件创建日志器，文件中的 directory 可被 WithDirectory 覆盖
func NewFromFile(path string, opts ...Option) (*Logger, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(cfg.Name, append([]Option{WithConfig(cfg)}, opts...)...)
}

// WatchConfig 立即应用 path 中 section 下的配置，并在文件变更时重新应用
//
// 名称与目录不随配置文件变化；cb 可为 nil，每次重载后以应用结果回调。
// 调用方负责 Stop 返回的监视器。
func (l *Logger) WatchConfig(path, section string, cb func(Config, error), opts ...xconf.WatchOption) (*xconf.Watcher, error) {
	src, err := xconf.New(path)
	if err != nil {
		return nil, err
	}
	if _, err := l.applySource(src, section); err != nil {
		return nil, err
	}
	return xconf.Watch(src, func(src *xconf.Config, err error) {
		var cfg Config
		if err == nil {
			cfg, err = l.applySource(src, section)
		}
		if err != nil {
			l.handleError(fmt.Errorf("xloger: reload %s: %w", path, err))
		}
		if cb != nil {
			cb(cfg, err)
		}
	}, opts...)
}

func (l *Logger) applySource(src *xconf.Config, section string) (Config, error) {
	base := l.Config()
	cfg, err := DecodeConfig(src, section, base)
	if err != nil {
		return Config{}, err
	}
	if err := l.Apply(cfg); err != nil {
		return Config{}, err
	}
	return l.Config(), nil
}
