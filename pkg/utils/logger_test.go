package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	t.Run("respects minimum level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewDefaultLogger(LevelWarn, &buf)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		out := buf.String()
		assert.NotContains(t, out, "debug message")
		assert.NotContains(t, out, "info message")
		assert.Contains(t, out, "warn message")
		assert.Contains(t, out, "error message")
	})

	t.Run("formats arguments", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewDefaultLogger(LevelInfo, &buf)

		logger.Info("parsed %d records from %s", 42, "heap.json")
		assert.Contains(t, buf.String(), "parsed 42 records from heap.json")
	})

	t.Run("SetLevel changes filtering", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewDefaultLogger(LevelInfo, &buf)

		logger.Debug("hidden")
		logger.SetLevel(LevelDebug)
		logger.Debug("visible")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
	})
}

func TestDefaultLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewDefaultLogger(LevelInfo, &buf)

	child := logger.WithField("task", "run-1")
	child.Info("started")

	assert.Contains(t, buf.String(), "task=run-1")
	assert.Contains(t, buf.String(), "started")

	// Parent logger is unaffected.
	buf.Reset()
	logger.Info("plain")
	assert.NotContains(t, buf.String(), "task=run-1")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLogLevel(tt.input), "input %q", tt.input)
	}
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}

func TestNullLogger(t *testing.T) {
	logger := &NullLogger{}
	// Must not panic and WithField must return a usable logger.
	logger.Debug("x")
	logger.Info("x")
	logger.Warn("x")
	logger.Error("x")
	assert.Equal(t, logger, logger.WithField("k", "v"))
}
