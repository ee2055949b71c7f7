package logger_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oaiiae/contacts-directory/cli/logger"
)

func TestNew_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	options := &logger.Options{LogLevel: "warn", LogFile: path, LogFormat: "JSON"}

	l := logger.New(options)
	l.Info("dropped")
	l.Warn("kept", "k", "v")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	require.Equal(t, "kept", record["msg"])
	require.Equal(t, "v", record["k"])
}

func TestNew_InvalidOptionsFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	options := &logger.Options{LogLevel: "loud", LogFile: path, LogFormat: "xml"}

	l := logger.New(options)
	require.NotNil(t, l)
	require.Empty(t, options.LogLevel)
	require.Equal(t, "text", options.LogFormat)
}

func TestNew_LevelOffsets(t *testing.T) {
	for option, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn+2":  slog.LevelWarn + 2,
		"error-1": slog.LevelError - 1,
	} {
		t.Run(option, func(t *testing.T) {
			l := logger.New(&logger.Options{LogLevel: option, LogFile: filepath.Join(t.TempDir(), "out.log")})
			require.True(t, l.Enabled(context.Background(), want))
			require.False(t, l.Enabled(context.Background(), want-1))
		})
	}
}

func TestNew_Attrs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	options := &logger.Options{LogLevel: "bogus", LogFile: path, LogFormat: "json"}

	l := logger.New(options, slog.String("service", "contacts"), slog.String("version", "1.2.3"))
	l.Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		require.Equal(t, "contacts", record["service"])
		require.Equal(t, "1.2.3", record["version"])
	}
	require.Contains(t, lines[0], `"option":"bogus"`)
}

func TestNew_DevNull(t *testing.T) {
	l := logger.New(&logger.Options{LogFile: os.DevNull})
	require.False(t, l.Enabled(context.Background(), slog.LevelError))
}
