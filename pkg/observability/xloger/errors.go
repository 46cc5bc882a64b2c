package xloger

import "errors"

// 配置错误，由 setter 与配置加载返回，日志调用本身从不返回错误
var (
	// ErrInvalidFormat 文件名格式串含未知分量，包装 xrotate.ErrInvalidFormat
	ErrInvalidFormat = errors.New("xloger: invalid file name format")

	// ErrInvalidMaxFiles 每级别保留文件数小于 1
	ErrInvalidMaxFiles = errors.New("xloger: max files must be at least 1")

	// ErrInvalidExpire 过期时间为负
	ErrInvalidExpire = errors.New("xloger: file expire must not be negative")

	// ErrInvalidName 日志器名称为空或不能作为目录名
	ErrInvalidName = errors.New("xloger: invalid logger name")

	// ErrInvalidSeverity 无法识别的级别名称
	ErrInvalidSeverity = errors.New("xloger: invalid severity")
)
