package logutil

import (
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger at the given level.
func NewLogger(level zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return zap.Must(cfg.Build())
}

// NewSlogBridge exposes a zap logger as a tinted slog console logger,
// so packages speaking slog share the zap output and level.
func NewSlogBridge(logger *zap.Logger) *slog.Logger {
	stdOutLogger := zap.NewStdLog(logger)

	var slogLevel slog.Level = slog.LevelInfo

	switch logger.Level() {
	case zap.DebugLevel:
		slogLevel = slog.LevelDebug
	case zap.InfoLevel:
		slogLevel = slog.LevelInfo
	case zap.WarnLevel:
		slogLevel = slog.LevelWarn
	case zap.ErrorLevel:
		slogLevel = slog.LevelError
	case zap.PanicLevel:
		slogLevel = slog.LevelError
	}

	return slog.New(tint.NewHandler(stdOutLogger.Writer(), &tint.Options{
		Level:      slogLevel,
		TimeFormat: time.DateTime,
	}))
}
