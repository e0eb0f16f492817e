package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/botguard/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    logger.Level
		wantErr bool
	}{
		{"debug", logger.LevelDebug, false},
		{"INFO", logger.LevelInfo, false},
		{"", logger.LevelInfo, false},
		{"warn", logger.LevelWarn, false},
		{"Warning", logger.LevelWarn, false},
		{" error ", logger.LevelError, false},
		{"trace", logger.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := logger.ParseLevel(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, logger.ErrUnknownLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_UnmarshalText(t *testing.T) {
	t.Parallel()

	var l logger.Level
	require.NoError(t, l.UnmarshalText([]byte("error")))
	assert.Equal(t, logger.LevelError, l)
	require.Error(t, l.UnmarshalText([]byte("loud")))
	assert.Equal(t, logger.LevelError, l, "failed parse leaves the value untouched")
}

func TestLevel_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DEBUG", logger.LevelDebug.String())
	assert.Equal(t, "ERROR", logger.LevelError.String())
	assert.Equal(t, "LEVEL(9)", logger.Level(9).String())
}

func TestSlogLevelMapping(t *testing.T) {
	t.Parallel()

	log, _, sink := newTestLogger(logger.WithLevel(logger.LevelDebug))
	s := log.Slog("Bridge")

	s.Log(t.Context(), slog.LevelDebug-4, "trace")
	s.Log(t.Context(), slog.LevelInfo+2, "notice")
	s.Log(t.Context(), slog.LevelError+4, "fatal")

	lines := sink.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "| DEBUG |")
	assert.Contains(t, lines[1], "| INFO  |")
	assert.Contains(t, lines[2], "| ERROR |")
}

func TestColorMode(t *testing.T) {
	t.Parallel()

	var m logger.ColorMode
	require.NoError(t, m.UnmarshalText([]byte("ALWAYS")))
	assert.Equal(t, logger.ColorAlways, m)
	require.NoError(t, m.UnmarshalText(nil))
	assert.Equal(t, logger.ColorAuto, m)
	require.ErrorIs(t, m.UnmarshalText([]byte("rainbow")), logger.ErrUnknownColorMode)

	buf := &bytes.Buffer{}
	assert.True(t, logger.ColorAlways.Enabled(buf))
	assert.False(t, logger.ColorNever.Enabled(buf))
	assert.False(t, logger.ColorAuto.Enabled(buf), "a buffer is not a terminal")
}

func TestColorMode_AutoResolvedAtNew(t *testing.T) {
	t.Parallel()

	console := &bytes.Buffer{}
	log := logger.New(logger.WithConsole(console), logger.WithColorMode(logger.ColorAlways))
	log.Module("Api").Info("x")
	assert.Contains(t, console.String(), "\x1b[36m")
}
