package xrotate

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/omeyang/dvtloger/pkg/util/xfile"
)

// Policy 日志文件保留策略
type Policy struct {
	// MaxFiles 每个前缀最多保留的文件数，<= 0 表示不限制
	MaxFiles int

	// Expire 文件最短保留时长；创建时间距今不超过 Expire 的文件永不删除
	Expire time.Duration
}

// candidate 待评估的日志文件
type candidate struct {
	path  string
	birth time.Time
}

// Enforce 在 dir 中对匹配 prefix 的文件执行保留策略，返回被删除的文件路径
//
// 规则：
//  1. 匹配文件数 <= MaxFiles 时不删除任何文件
//  2. 否则按创建时间从旧到新，最多删除 count-MaxFiles 个文件
//  3. 只删除创建时间早于 now-Expire 的文件；遇到第一个未过期的文件即停止
//
// 删除失败（权限不足、文件已被删除）的文件被跳过，不计入配额，也不中断处理。
func (p Policy) Enforce(dir, prefix string, now time.Time) []string {
	if p.MaxFiles <= 0 {
		return nil
	}
	names, err := xfile.ListFiles(dir, MatchPrefix(prefix))
	if err != nil || len(names) <= p.MaxFiles {
		return nil
	}

	files := make([]candidate, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Lstat(path)
		if err != nil {
			continue
		}
		files = append(files, candidate{path: path, birth: birthTime(path, info)})
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].birth.Before(files[j].birth)
	})

	excess := len(files) - p.MaxFiles
	deadline := now.Add(-p.Expire)
	var removed []string
	for _, f := range files {
		if len(removed) >= excess {
			break
		}
		if !f.birth.Before(deadline) {
			break
		}
		if err := os.Remove(f.path); err != nil {
			continue
		}
		removed = append(removed, f.path)
	}
	return removed
}

// birthTime 文件创建时间，平台不支持时退化为修改时间。测试中可替换。
var birthTime = fileBirthTime

func modTime(_ string, info fs.FileInfo) time.Time {
	return info.ModTime()
}
