package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/storylab/backend/internal/config"
)

// NewLogger builds the process logger from LogConfig and installs it as the
// slog default so package-level slog calls share it.
//
// Records go to os.Stderr. Format "json" emits machine-readable output for
// deployed instances; "text" adds source locations for local runs. Levels
// are debug/info/warn/error, case-insensitive, defaulting to info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
