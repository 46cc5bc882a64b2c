package xfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DefaultDirPerm 默认目录权限（所有者 rwx，组 r-x，其他无权限）
const DefaultDirPerm = 0750

// EnsureDir 确保文件的父目录存在，使用默认权限 0750。
// 目录已存在时不报错。
func EnsureDir(filename string) error {
	return EnsureDirWithPerm(filename, DefaultDirPerm)
}

// EnsureDirWithPerm 确保文件的父目录存在，使用指定权限
//
// 参数：
//   - filename: 文件路径（不是目录路径），不能为空，不能包含空字节
//   - perm: 目录权限，必须包含所有者执行位（0100），否则目录无法遍历
//
// 如果目录已存在，不会修改其权限。
func EnsureDirWithPerm(filename string, perm os.FileMode) error {
	if filename == "" {
		return fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		if containsNullByte(filename) {
			return fmt.Errorf("filename contains null byte: %w", ErrNullByte)
		}
		return checkPerm(perm)
	}
	return mkdirAll(dir, perm)
}

// EnsureDirectory 确保目录 dir 本身存在（递归创建），使用默认权限 0750。
//
// 幂等：目录已存在或被并发创建都视为成功；
// 路径已存在但不是目录时返回 [ErrNotDirectory]。
func EnsureDirectory(dir string) error {
	if dir == "" {
		return fmt.Errorf("directory is required: %w", ErrEmptyPath)
	}
	return mkdirAll(filepath.Clean(dir), DefaultDirPerm)
}

func mkdirAll(dir string, perm os.FileMode) error {
	if containsNullByte(dir) {
		return fmt.Errorf("directory contains null byte: %w", ErrNullByte)
	}
	if err := checkPerm(perm); err != nil {
		return err
	}
	err := os.MkdirAll(dir, perm)
	if err == nil {
		return nil
	}
	// 并发场景下其他 goroutine/进程可能刚刚创建了同一目录
	if errors.Is(err, fs.ErrExist) {
		if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
			return nil
		}
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}
	return err
}

// checkPerm 目录必须包含所有者执行位（0100），否则无法进入和遍历
func checkPerm(perm os.FileMode) error {
	if perm&0100 == 0 {
		return fmt.Errorf("directory permission %04o missing owner execute bit: %w", perm, ErrInvalidPerm)
	}
	return nil
}

// ListFiles 返回 dir 下所有普通文件的名称（不含子目录），按名称升序。
//
// match 为 nil 时返回全部文件。目录不存在时返回空切片和 nil 错误，
// 便于"没有任何日志"与"读取失败"区分处理。
func ListFiles(dir string, match func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if match != nil && !match(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
