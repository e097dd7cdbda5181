package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestFromContext_FallsBackToGlobal checks that a bare context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, global, FromContext(context.Background()))
}

// TestWithNameAndKV ensures names and fields travel with the context.
func TestWithNameAndKV(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	ctx = WithName(ctx, "houdini-packager")
	ctx = WithKV(ctx, "version", "18.5")

	InfoKV(ctx, "Resolved install path", "path", "/opt/hfs18.5")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "houdini-packager", entries[0].LoggerName)
	require.Equal(t, "Resolved install path", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "18.5", fields["version"])
	require.Equal(t, "/opt/hfs18.5", fields["path"])
}

// TestNewWithWriter checks that lines reach the provided writer and respect the level.
func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithWriter(&buf, zapcore.WarnLevel)
	l.Info("hidden")
	l.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}
