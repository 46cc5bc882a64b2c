package xlog

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_Order(t *testing.T) {
	assert.Less(t, LevelDebug, LevelInfo)
	assert.Less(t, LevelInfo, LevelNotice)
	assert.Less(t, LevelNotice, LevelError)
	assert.Less(t, LevelError, LevelFault)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{" INFO ", LevelInfo},
		{"notice", LevelNotice},
		{"default", LevelNotice},
		{"Error", LevelError},
		{"fault", LevelFault},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("warn")
	assert.Error(t, err)
}

func TestLevel_TextRoundTrip(t *testing.T) {
	var l Level
	require.NoError(t, l.UnmarshalText([]byte("fault")))
	text, err := l.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "FAULT", string(text))
	assert.Error(t, l.UnmarshalText([]byte("nope")))
	assert.Equal(t, LevelFault, l)
}

func TestLevel_String_NonStandard(t *testing.T) {
	assert.Equal(t, slog.Level(3).String(), Level(3).String())
}

func TestReplaceLevel(t *testing.T) {
	a := replaceLevel(nil, slog.Any(slog.LevelKey, slog.Level(LevelNotice)))
	assert.Equal(t, "NOTICE", a.Value.String())

	other := slog.String("msg", "x")
	assert.Equal(t, other, replaceLevel(nil, other))
}
