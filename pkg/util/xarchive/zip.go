package xarchive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"
)

// Ext 归档文件扩展名
const Ext = ".zip"

// statConcurrency 并发 stat 的上限
const statConcurrency = 8

// Path 返回 dir 对应的归档路径 "<dir>.zip"
func Path(dir string) string {
	return filepath.Clean(dir) + Ext
}

// Zip 把 files 打包到 "<dir>.zip" 并返回其路径
//
// progress 可为 nil；按已写入字节数回调 [0,1] 区间内单调递增的进度，成功时最后一次为 1。
// ctx 取消时中止并删除未完成的归档。
func Zip(ctx context.Context, dir string, files []string, progress func(float64)) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("%w: %w", ErrArchive, ErrNoFiles)
	}
	infos, err := statAll(ctx, files)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}

	dest := Path(dir)
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}
	tmpName := tmp.Name()

	err = writeZip(ctx, tmp, dir, files, infos, newTracker(infos, progress))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, dest)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}
	return dest, nil
}

// statAll 并发获取文件信息，目录与缺失文件报错
func statAll(ctx context.Context, files []string) ([]fs.FileInfo, error) {
	infos := make([]fs.FileInfo, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(statConcurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return fmt.Errorf("%s: not a regular file", path)
			}
			infos[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return infos, nil
}

func writeZip(ctx context.Context, w io.Writer, dir string, files []string, infos []fs.FileInfo, tr *tracker) error {
	zw := zip.NewWriter(w)
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return errors.Join(err, zw.Close())
		}
		if err := addFile(zw, entryName(dir, path), path, infos[i], tr); err != nil {
			return errors.Join(err, zw.Close())
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	tr.finish()
	return nil
}

func addFile(zw *zip.Writer, name, path string, info fs.FileInfo, tr *tracker) error {
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	_, err = io.Copy(dst, io.TeeReader(src, tr))
	return err
}

// entryName 条目名使用 "/" 分隔的相对路径
func entryName(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// tracker 把写入字节数换算为进度
type tracker struct {
	total    int64
	done     int64
	last     float64
	progress func(float64)
}

func newTracker(infos []fs.FileInfo, progress func(float64)) *tracker {
	var total int64
	for _, info := range infos {
		total += info.Size()
	}
	return &tracker{total: total, progress: progress}
}

// Write 实现 io.Writer，供 io.TeeReader 计数
func (t *tracker) Write(p []byte) (int, error) {
	t.done += int64(len(p))
	if t.total > 0 {
		t.report(min(float64(t.done)/float64(t.total), 1))
	}
	return len(p), nil
}

func (t *tracker) report(f float64) {
	if t.progress == nil || f <= t.last {
		return
	}
	t.last = f
	t.progress(f)
}

func (t *tracker) finish() {
	if t.progress != nil && t.last < 1 {
		t.last = 1
		t.progress(1)
	}
}
