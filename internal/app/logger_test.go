package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerHonorsConfiguredLevel(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		warnOn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"bogus", false, true},
	}
	for _, tc := range tests {
		logger := NewLogger(&Config{LogFormat: "json", LogLevel: tc.level})
		assert.Equal(t, tc.debugOn, logger.Enabled(context.Background(), slog.LevelDebug), "level %q debug", tc.level)
		assert.Equal(t, tc.warnOn, logger.Enabled(context.Background(), slog.LevelWarn), "level %q warn", tc.level)
	}
}

func TestLoggerNilConfigDefaultsToInfo(t *testing.T) {
	logger := NewLogger(nil)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}
