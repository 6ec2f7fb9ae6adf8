package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture installs a logger on a buffer and restores the previous default afterwards.
func capture(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLoggerWithWriter(cfg, &buf)
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestInitLoggerWithWriter_JSONCarriesBaseAttributes(t *testing.T) {
	buf := capture(t, NewConfig("info", "JSON", "dreamjournal", "1.4.0", "prod"))

	Info("quest completed", "quest_id", "daily-sketch", "reward_yc", 3)

	entry := decodeLine(t, buf)
	assert.Equal(t, "dreamjournal", entry[AttrKeyService])
	assert.Equal(t, "1.4.0", entry[AttrKeyVersion])
	assert.Equal(t, "prod", entry[AttrKeyEnvironment])
	assert.Equal(t, "quest completed", entry["msg"])
	assert.Equal(t, "daily-sketch", entry["quest_id"])
	assert.Equal(t, float64(3), entry["reward_yc"])
	assert.NotContains(t, entry, slog.SourceKey)
}

func TestInitLoggerWithWriter_SkipsEmptyBaseAttributes(t *testing.T) {
	buf := capture(t, Config{Format: LogFormatJSON})

	Info("bare")

	entry := decodeLine(t, buf)
	assert.NotContains(t, entry, AttrKeyService)
	assert.NotContains(t, entry, AttrKeyVersion)
}

func TestInitLoggerWithWriter_RedactsCredentials(t *testing.T) {
	buf := capture(t, Config{Format: LogFormatJSON})

	Info("login", "nickname", "inkwell", "password", "hunter22", slog.Group("invite", slog.String("Token", "abc.def")))

	entry := decodeLine(t, buf)
	assert.Equal(t, "inkwell", entry["nickname"])
	assert.Equal(t, RedactedValue, entry["password"])
	invite, ok := entry["invite"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, RedactedValue, invite["Token"])
}

func TestInitLoggerWithWriter_LevelFilters(t *testing.T) {
	buf := capture(t, Config{Level: LogLevelWarn, Format: LogFormatText})

	Debug("hidden-debug")
	Info("hidden-info")
	Warn("visible-warn")
	Error("visible-error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible-warn")
	assert.Contains(t, out, "visible-error")
}

func TestFromContext_AddsRequestAndUser(t *testing.T) {
	buf := capture(t, Config{Format: LogFormatJSON})

	ctx := WithUserID(WithRequestID(context.Background(), "req-42"), "user-7")
	FromContext(ctx).Info("scoped")

	entry := decodeLine(t, buf)
	assert.Equal(t, "req-42", entry[AttrKeyRequestID])
	assert.Equal(t, "user-7", entry[AttrKeyUserID])
}

func TestRequestIDHelpers(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, GetRequestID(WithRequestID(context.Background(), "")))

	id := GenerateRequestID()
	assert.Len(t, id, 36)
	assert.NotEqual(t, id, GenerateRequestID())
}

func TestNewConfig_SourceOnlyInDevelopment(t *testing.T) {
	tests := map[string]bool{
		"dev":         true,
		"Development": true,
		"local":       true,
		"prod":        false,
		"staging":     false,
		"":            false,
	}
	for env, want := range tests {
		assert.Equal(t, want, NewConfig("info", "text", "svc", "v", env).AddSource, env)
	}
}

func TestConfig_LogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, Config{Level: in}.LogLevel(), in)
	}
}
