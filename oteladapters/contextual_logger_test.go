package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/availsys/asset-availability-go/oteladapters"
)

func Test_NewSlogBridgeLogger_Construction(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("test")
	assert.NotNil(t, logger, "NewSlogBridgeLogger should return non-nil logger")
}

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	logger.DebugContext(ctx, "debug message", "level", "debug")
	logger.InfoContext(ctx, "info message", "level", "info")
	logger.WarnContext(ctx, "warn message", "level", "warn")
	logger.ErrorContext(ctx, "error message", "level", "error")

	output := buf.String()

	assert.Contains(t, output, "debug message", "Debug message should be logged")
	assert.Contains(t, output, "info message", "Info message should be logged")
	assert.Contains(t, output, "warn message", "Warn message should be logged")
	assert.Contains(t, output, "error message", "Error message should be logged")

	assert.Contains(t, output, `"level":"debug"`, "Debug level should be present")
	assert.Contains(t, output, `"level":"info"`, "Info level should be present")
	assert.Contains(t, output, `"level":"warn"`, "Warn level should be present")
	assert.Contains(t, output, `"level":"error"`, "Error level should be present")
}

func Test_SlogBridgeLogger_PlainLevels(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()

	assert.Contains(t, output, "debug message", "Debug message should be logged")
	assert.Contains(t, output, "info message", "Info message should be logged")
	assert.Contains(t, output, "warn message", "Warn message should be logged")
	assert.Contains(t, output, "error message", "Error message should be logged")
}

func Test_NewOTelLogger_Construction(t *testing.T) {
	provider := noop.NewLoggerProvider()
	logger := oteladapters.NewOTelLogger(provider.Logger("test"))

	assert.NotNil(t, logger, "NewOTelLogger should return non-nil logger")

	// must not panic even with odd key-value args
	logger.InfoContext(context.Background(), "message", "key", "value", "dangling")
}
