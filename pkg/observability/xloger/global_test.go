package xloger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Lazy(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvRoot, root)
	ResetDefault()
	t.Cleanup(ResetDefault)

	var wg sync.WaitGroup
	got := make([]*Logger, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = Default()
		}()
	}
	wg.Wait()

	for _, l := range got {
		assert.Same(t, got[0], l)
	}
	assert.Equal(t, DefaultName, got[0].Name())
	assert.Equal(t, filepath.Join(root, DefaultName), got[0].Directory())
}

func TestSetDefault(t *testing.T) {
	t.Cleanup(ResetDefault)
	var buf bytes.Buffer
	l, err := New("custom", WithDirectory(t.TempDir()), WithConsole(&buf))
	require.NoError(t, err)

	SetDefault(nil)
	SetDefault(l)
	assert.Same(t, l, Default())

	ret := Notice(String("n"))
	assert.Contains(t, ret, "[custom]")
	assert.Contains(t, ret, "[global_test.go:")
	assert.True(t, strings.HasSuffix(ret, "=> n"))

	assert.NotEmpty(t, Info(String("i")))
	assert.NotEmpty(t, Debug(String("d")))
	assert.NotEmpty(t, Error(String("e")))
	assert.NotEmpty(t, Fault(String("f")))
	assert.True(t, strings.HasSuffix(Logf(SeverityError, "%s-%d", "x", 1), "=> x-1"))
	assert.Equal(t, 6, strings.Count(buf.String(), "\n"))

	// Error 与 Fault 达到默认文件阈值
	assert.Len(t, l.FilePaths(), 2)
}

func TestResetDefault(t *testing.T) {
	t.Setenv(EnvRoot, t.TempDir())
	t.Cleanup(ResetDefault)

	l, err := New("custom", WithDirectory(t.TempDir()))
	require.NoError(t, err)
	SetDefault(l)
	ResetDefault()
	assert.NotSame(t, l, Default())
	assert.Equal(t, DefaultName, Default().Name())
}

func TestDefault_FallbackWhenBuildFails(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	orig := buildDefault
	buildDefault = func(...Option) (*Logger, error) { return nil, errors.New("no root") }
	t.Cleanup(func() {
		buildDefault = orig
		ResetDefault()
	})
	ResetDefault()

	var l *Logger
	require.NotPanics(t, func() { l = Default() })
	require.NotNil(t, l)
	assert.Equal(t, DefaultName, l.Name())
	assert.Equal(t, filepath.Join(os.TempDir(), DefaultName), l.Directory())
	assert.Equal(t, uint64(2), l.ErrorCount(), "default and temp-dir attempts both counted")

	// 系统日志通道为空操作，文件写入仍可用
	l.SetSystemLog(true)
	assert.NotEmpty(t, l.Fault(String("still logging")))
	require.Len(t, l.FilePaths(), 1)
	assert.Contains(t, lastLine(t, l.FilePaths()[0]), "still logging")
}
