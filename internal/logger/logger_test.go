package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "production", Level: slog.LevelInfo})

	log.Info("lead assigned", "lead_id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "lead assigned", line["msg"])
	assert.Equal(t, "INFO", line["level"])
	assert.InDelta(t, 7, line["lead_id"], 0)
}

func TestNew_DevelopmentWritesConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development", Level: slog.LevelInfo})

	log.Info("tag created", "name", "VIP")

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "tag created")
	assert.Contains(t, out, "name=VIP")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: FormatPretty, Level: slog.LevelWarn})

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestLogger_WithHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: FormatJSON, Level: slog.LevelDebug})

	log.WithError(errors.New("boom")).
		WithField("user_id", "usr-1").
		WithFields(map[string]any{"b": 2, "a": 1}).
		Error("failed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "usr-1", line["user_id"])
	assert.InDelta(t, 1, line["a"], 0)
	assert.InDelta(t, 2, line["b"], 0)
}

func TestLogger_WithErrorNil(t *testing.T) {
	log := Discard()
	assert.Same(t, log, log.WithError(nil))
}

func TestConsoleHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewConsoleHandler(&buf, nil))

	log.WithGroup("http").Info("request", "status", 200)

	assert.True(t, strings.Contains(buf.String(), "http.status=200"), buf.String())
}

func TestConsoleHandler_QuotesSpaces(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewConsoleHandler(&buf, nil))

	log.Info("ban", "reason", "spam account")

	assert.Contains(t, buf.String(), `reason="spam account"`)
}
