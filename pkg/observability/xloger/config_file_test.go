package xloger

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/dvtloger/pkg/config/xconf"
	"github.com/omeyang/dvtloger/pkg/observability/xrotate"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "logger.yaml", `
name: Net
console_level: error
file_level: notice
show_thread: false
file_name_format: Y-M-D
max_files: 3
file_expire_seconds: 3600
system_log: true
separator: " | "
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	want := DefaultConfig("Net")
	want.ConsoleLevel = SeverityError
	want.FileLevel = SeverityNotice
	want.Show.Thread = false
	want.FileNameFormat = xrotate.Format(xrotate.TokenYear | xrotate.TokenMonth | xrotate.TokenDay)
	want.MaxFiles = 3
	want.FileExpire = time.Hour
	want.SystemLog = true
	want.Separator = " | "
	assert.Equal(t, want, cfg)
}

func TestLoadConfig_JSONDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "logger.json", `{"max_files": 2}`))
	require.NoError(t, err)

	want := DefaultConfig(DefaultName)
	want.MaxFiles = 2
	assert.Equal(t, want, cfg)
}

func TestLoadConfigSection(t *testing.T) {
	path := writeConfig(t, "app.yaml", `
logging:
  network:
    name: Network
    file_level: fault
`)
	cfg, err := LoadConfigSection(path, "logging.network")
	require.NoError(t, err)
	assert.Equal(t, "Network", cfg.Name)
	assert.Equal(t, SeverityFault, cfg.FileLevel)

	cfg, err = LoadConfigSection(path, "logging.missing")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(DefaultName), cfg)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     error
	}{
		{"format", "file_name_format: Y-X", ErrInvalidFormat},
		{"console", "console_level: loud", ErrInvalidSeverity},
		{"file", "file_level: warning", ErrInvalidSeverity},
		{"max", "max_files: 0", ErrInvalidMaxFiles},
		{"expire", "file_expire_seconds: -1", ErrInvalidExpire},
		{"name", "name: a/b", ErrInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, "logger.yaml", tt.content))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, xconf.ErrLoadFailed)
}

func TestLoadConfig_HugeExpireClamped(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "logger.yaml", "file_expire_seconds: 100000000000.5"))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(math.MaxInt64), cfg.FileExpire)
}

func TestExpireDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    time.Duration
		wantErr bool
	}{
		{"zero", 0, 0, false},
		{"fraction", 1.5, 1500 * time.Millisecond, false},
		{"week", 604800, 7 * 24 * time.Hour, false},
		{"overflow", 1e11, time.Duration(math.MaxInt64), false},
		{"inf", math.Inf(1), time.Duration(math.MaxInt64), false},
		{"negative", -1, 0, true},
		{"nan", math.NaN(), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expireDuration(tt.seconds)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidExpire)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileConfig_RoundTrip(t *testing.T) {
	cfg := DefaultConfig("Round")
	cfg.FileExpire = 90 * time.Minute
	cfg.Show = ShowFlags{Level: true}
	got, err := toFileConfig(cfg).toConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestNewFromFile(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, "logger.yaml", "name: FromFile\nfile_level: notice\n")

	l, err := NewFromFile(path, WithDirectory(root))
	require.NoError(t, err)
	assert.Equal(t, "FromFile", l.Name())
	assert.Equal(t, filepath.Join(root, "FromFile"), l.Directory())
	assert.Equal(t, SeverityNotice, l.Config().FileLevel)
}

func TestLogger_WatchConfig(t *testing.T) {
	l, _ := newTestLogger(t, "Watch")
	path := writeConfig(t, "logger.yaml", "console_level: error\n")

	var mu sync.Mutex
	var applied []Config
	w, err := l.WatchConfig(path, "", func(cfg Config, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			applied = append(applied, cfg)
		}
	}, xconf.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer func() { assert.NoError(t, w.Stop()) }()

	assert.Equal(t, SeverityError, l.Config().ConsoleLevel, "applied immediately")

	require.NoError(t, os.WriteFile(path, []byte("console_level: fault\nname: Other\n"), 0o600))
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(applied) > 0 && l.Config().ConsoleLevel == SeverityFault
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "Watch", l.Config().Name, "name is not reloaded")
}

func TestLogger_WatchConfigRejectsInvalid(t *testing.T) {
	l, _ := newTestLogger(t, "WatchBad")
	_, err := l.WatchConfig(writeConfig(t, "logger.yaml", "max_files: -3\n"), "", nil)
	assert.ErrorIs(t, err, ErrInvalidMaxFiles)
	assert.Equal(t, DefaultMaxFiles, l.Config().MaxFiles)
}
