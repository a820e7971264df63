package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestNew_JSONIncludesFieldsAndTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Format: FormatJSON, Output: &buf, Fields: []any{"service", "goalserve-heatmap"}})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "fetched feed", "feed", "soccernew/live", "matches", 12)
	logger.Debug("dropped below level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, sonic.UnmarshalString(lines[0], &entry))
	require.Equal(t, "fetched feed", entry["msg"])
	require.Equal(t, "goalserve-heatmap", entry["service"])
	require.Equal(t, "soccernew/live", entry["feed"])
	require.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	require.Equal(t, "00f067aa0ba902b7", entry["span_id"])
	require.Contains(t, entry["caller"], "logger_test.go")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, err := ParseLevel(" WARN ")
	require.NoError(t, err)
	require.Equal(t, LevelWarn, level)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestZapFields_OddArgs(t *testing.T) {
	t.Parallel()

	fields := zapFields([]any{"league_id", "1204", 42, "x", "dangling"})
	require.Len(t, fields, 3)
	require.Equal(t, "league_id", fields[0].Key)
	require.Equal(t, "arg", fields[1].Key)
	require.Equal(t, "dangling", fields[2].Key)
}

func TestSetMirror_ReceivesEnabledEntries(t *testing.T) {
	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf})
	logger.Debug("skipped")
	logger.Info("kept")
	logger.WarnContext(context.Background(), "also kept", "key", "value")

	require.Equal(t, []string{"info:kept", "warn:also kept"}, got)

	SetMirror(nil)
	logger.Info("after reset")
	require.Len(t, got, 2)
}
