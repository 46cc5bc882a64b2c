package xarchive

import "errors"

var (
	// ErrArchive 归档失败，所有错误都包装它
	ErrArchive = errors.New("xarchive: archive failed")

	// ErrNoFiles 没有可归档的文件
	ErrNoFiles = errors.New("xarchive: no files to archive")
)
