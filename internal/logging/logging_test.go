package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithPath_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "upper case", level: "WARN", want: zerolog.WarnLevel},
		{name: "empty defaults to info", level: "", want: zerolog.InfoLevel},
		{name: "invalid defaults to info", level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewLoggerWithPath(Config{Level: tt.level, Output: OutputDiscard})
			assert.Equal(t, tt.want, result.Logger.GetLevel())
			assert.False(t, result.UsingFile)
		})
	}
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "holocron.log")

	result := NewLoggerWithPath(Config{Level: "info", Output: OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.Equal(t, path, result.FilePath)
	assert.False(t, result.FallbackUsed)

	result.Logger.Info().Str("category", "films").Msg("list loaded")
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &line))
	assert.Equal(t, "list loaded", line["message"])
	assert.Equal(t, "films", line["category"])
}

func TestNewLoggerWithPath_FileFallback(t *testing.T) {
	result := NewLoggerWithPath(Config{Level: "info", Output: OutputFile})

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
	assert.NoError(t, result.Close())
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	logger := ComponentLogger(base, "swapi")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"swapi"`)
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	_, ok := TraceIDFromContext(ctx)
	assert.False(t, ok)

	generated := GetOrGenerateTraceID(ctx)
	assert.Len(t, generated, 26)

	ctx = ContextWithTraceID(ctx, generated)
	got, ok := TraceIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, generated, got)
	assert.Equal(t, generated, GetOrGenerateTraceID(ctx))
}

func TestTraceHook(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(traceHook{})
	ctx := ContextWithTraceID(context.Background(), "01TESTTRACE")

	logger.Info().Ctx(ctx).Msg("traced")

	assert.Contains(t, buf.String(), `"trace_id":"01TESTTRACE"`)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from ctx")
	assert.Contains(t, buf.String(), "from ctx")

	// A bare context yields a usable, silent logger.
	assert.NotPanics(t, func() {
		FromContext(context.Background()).Info().Msg("dropped")
	})
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/holocron.log")
	PrintFallbackWarning(&buf, "permission denied")

	assert.Contains(t, buf.String(), "Logging to /tmp/holocron.log")
	assert.Contains(t, buf.String(), "permission denied")
}
