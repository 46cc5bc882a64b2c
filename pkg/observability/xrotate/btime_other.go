//go:build !linux

package xrotate

import (
	"io/fs"
	"time"
)

func fileBirthTime(path string, info fs.FileInfo) time.Time {
	return modTime(path, info)
}
