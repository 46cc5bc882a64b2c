//go:build linux

package xrotate

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// fileBirthTime 通过 statx(STATX_BTIME) 读取创建时间。
// 内核或文件系统不支持 btime 时退化为修改时间。
func fileBirthTime(path string, info fs.FileInfo) time.Time {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx)
	if err != nil || stx.Mask&unix.STATX_BTIME == 0 || stx.Btime.Sec == 0 {
		return modTime(path, info)
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
