package xlog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omeyang/dvtloger/pkg/observability/xlog"
	"github.com/omeyang/dvtloger/pkg/observability/xrotate"
)

// testCleanup 在测试结束时执行 cleanup
func testCleanup(t *testing.T, cleanup func() error) {
	t.Helper()
	t.Cleanup(func() {
		if err := cleanup(); err != nil {
			t.Errorf("cleanup error: %v", err)
		}
	})
}

func TestLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	testCleanup(t, cleanup)

	ctx := context.Background()
	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Notice(ctx, "notice message")
	logger.Error(ctx, "error message")
	logger.Fault(ctx, "fault message")

	output := buf.String()
	for _, want := range []string{
		"level=DEBUG msg=\"debug message\"",
		"level=INFO msg=\"info message\"",
		"level=NOTICE msg=\"notice message\"",
		"level=ERROR msg=\"error message\"",
		"level=FAULT msg=\"fault message\"",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\noutput: %s", want, output)
		}
	}
}

func TestLogger_DynamicLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetLevel(xlog.LevelError).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	testCleanup(t, cleanup)

	ctx := context.Background()
	logger.Notice(ctx, "dropped")
	if buf.Len() != 0 {
		t.Fatalf("notice should be filtered, got %q", buf.String())
	}
	if logger.Enabled(ctx, xlog.LevelNotice) {
		t.Error("Enabled(Notice) = true at Error level")
	}

	logger.SetLevel(xlog.LevelNotice)
	if got := logger.GetLevel(); got != xlog.LevelNotice {
		t.Errorf("GetLevel() = %v, want NOTICE", got)
	}
	if !logger.Enabled(ctx, xlog.LevelNotice) {
		t.Error("Enabled(Notice) = false after SetLevel(Notice)")
	}
	logger.Notice(ctx, "kept", slog.String("k", "v"))
	if !strings.Contains(buf.String(), "kept") || !strings.Contains(buf.String(), "k=v") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestLogger_NilContext(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	testCleanup(t, cleanup)

	//nolint:staticcheck // 验证 nil ctx 不 panic
	logger.Log(nil, xlog.LevelInfo, "nil ctx")
	if !strings.Contains(buf.String(), "nil ctx") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestBuilder_SetSubsystem(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().
		SetOutput(&buf).
		SetSubsystem("com.example.app", "default").
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	testCleanup(t, cleanup)

	logger.Notice(context.Background(), "hello")
	out := buf.String()
	if !strings.Contains(out, "subsystem=com.example.app") || !strings.Contains(out, "category=default") {
		t.Errorf("output missing fixed attrs: %s", out)
	}
}

func TestBuilder_SetSubsystem_Empty(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetSubsystem("", "").Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	testCleanup(t, cleanup)

	logger.Notice(context.Background(), "hello")
	if strings.Contains(buf.String(), xlog.KeySubsystem) {
		t.Errorf("empty subsystem should not be rendered: %s", buf.String())
	}
}

func TestBuilder_InvalidRotationSkipsLaterSetters(t *testing.T) {
	_, _, err := xlog.New().SetRotation("").SetSubsystem("ignored", "").Build()
	if err == nil {
		t.Error("expected error for empty rotation filename")
	}
}

func TestBuilder_SetRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system", "system.log")
	logger, cleanup, err := xlog.New().
		SetRotation(path, xrotate.WithMaxBackups(2)).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	logger.Error(context.Background(), "to file")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	// 重复调用安全
	if err := cleanup(); err != nil {
		t.Fatalf("second cleanup: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("file content = %q", data)
	}
}

func TestBuilder_SetRotation_Error(t *testing.T) {
	_, _, err := xlog.New().SetRotation("").Build()
	if err == nil {
		t.Error("expected error for empty rotation filename")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestBuilder_SetOnError(t *testing.T) {
	var got []error
	logger, cleanup, err := xlog.New().
		SetOutput(failingWriter{}).
		SetOnError(func(err error) { got = append(got, err) }).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	testCleanup(t, cleanup)

	logger.Error(context.Background(), "lost")
	logger.Error(context.Background(), "lost again", slog.Int("n", 1))

	if len(got) != 2 {
		t.Fatalf("onError called %d times, want 2", len(got))
	}
	if got[0].Error() != "disk full" {
		t.Errorf("onError err = %v, want disk full", got[0])
	}
}

func TestHandleError_PanicIsolated(t *testing.T) {
	calls := 0
	logger, cleanup, err := xlog.New().
		SetOutput(failingWriter{}).
		SetOnError(func(error) {
			calls++
			panic("boom")
		}).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	testCleanup(t, cleanup)

	// 回调 panic 不扩散；下一次失败仍会回调
	logger.Fault(context.Background(), "lost")
	logger.Fault(context.Background(), "lost again")
	if calls != 2 {
		t.Errorf("onError called %d times, want 2", calls)
	}
}
