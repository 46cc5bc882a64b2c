package xfile

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// EnsureDir / EnsureDirWithPerm
// =============================================================================

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		filename string
	}{
		{name: "创建单层目录", filename: filepath.Join(tmpDir, "newdir", "app.log")},
		{name: "创建多层目录", filename: filepath.Join(tmpDir, "a", "b", "c", "app.log")},
		{name: "目录已存在", filename: filepath.Join(tmpDir, "app.log")},
		{name: "当前目录文件", filename: "app.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, EnsureDir(tt.filename))

			dir := filepath.Dir(tt.filename)
			info, err := os.Stat(dir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		})
	}
}

func TestEnsureDirWithPerm_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirWithPerm("", 0750)
	assert.ErrorIs(t, err, ErrEmptyPath)

	err = EnsureDirWithPerm(filepath.Join(tmpDir, "x\x00y", "a.log"), 0750)
	assert.ErrorIs(t, err, ErrNullByte)

	err = EnsureDirWithPerm(filepath.Join(tmpDir, "noexec", "a.log"), 0600)
	assert.ErrorIs(t, err, ErrInvalidPerm)
}

// =============================================================================
// EnsureDirectory
// =============================================================================

func TestEnsureDirectory_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "DVTLoger", "Test")

	require.NoError(t, EnsureDirectory(dir))
	require.NoError(t, EnsureDirectory(dir), "重复创建应视为成功")

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDirectory_Concurrent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "race", "a", "b")

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			errs[idx] = EnsureDirectory(dir)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestEnsureDirectory_NotDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	err := EnsureDirectory(file)
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestEnsureDirectory_Empty(t *testing.T) {
	assert.ErrorIs(t, EnsureDirectory(""), ErrEmptyPath)
}

// =============================================================================
// ListFiles
// =============================================================================

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"info-2024.log", "error-2024.log", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.log"), 0750))

	all, err := ListFiles(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"error-2024.log", "info-2024.log", "notes.txt"}, all)

	logs, err := ListFiles(dir, func(name string) bool { return filepath.Ext(name) == ".log" })
	require.NoError(t, err)
	assert.Equal(t, []string{"error-2024.log", "info-2024.log"}, logs)
}

func TestListFiles_Missing(t *testing.T) {
	names, err := ListFiles(filepath.Join(t.TempDir(), "missing"), nil)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names)
}
