package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twentyfourlab/twentyfour-backend/internal/config"
)

func TestInitLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("Debug level enables debug records", func(t *testing.T) {
		logger := initLogger(&config.Config{LogLevel: "debug"})

		assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
	})

	t.Run("Warn level silences info records", func(t *testing.T) {
		logger := initLogger(&config.Config{LogLevel: "warn"})

		assert.True(t, logger.Enabled(ctx, slog.LevelWarn))
		assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	})

	t.Run("Error level silences warn records", func(t *testing.T) {
		logger := initLogger(&config.Config{LogLevel: "error"})

		assert.True(t, logger.Enabled(ctx, slog.LevelError))
		assert.False(t, logger.Enabled(ctx, slog.LevelWarn))
	})

	t.Run("Unknown level falls back to info", func(t *testing.T) {
		logger := initLogger(&config.Config{LogLevel: ""})

		assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		assert.False(t, logger.Enabled(ctx, slog.LevelDebug))
	})
}
