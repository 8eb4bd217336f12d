package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"bankcards/internal/config"
)

// New builds a slog.Logger from LOG_LEVEL and LOG_FORMAT.
func New() *slog.Logger {
	return newLogger(os.Stdout, config.GetEnv("LOG_LEVEL", "info"), config.GetEnv("LOG_FORMAT", "text"))
}

// Setup installs the configured logger as the slog default and returns it.
func Setup() *slog.Logger {
	logger := New()
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: !config.IsProduction(),
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
