package obs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
	File   string // rotate into this file instead of stderr when set
}

// NewLogger builds a slog logger. With File set, output goes to a rotating
// file capped at 64 MB with 14 days of history.
func NewLogger(cfg LogConfig) *slog.Logger {
	var w io.Writer = os.Stderr
	if cfg.File != "" {
		w = &lumberjack.Logger{
			Filename: cfg.File,
			MaxSize:  64, // MB
			MaxAge:   14,
			Compress: true,
		}
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// Setup installs the logger as the slog default and returns it.
func Setup(cfg LogConfig) *slog.Logger {
	l := NewLogger(cfg)
	slog.SetDefault(l)
	return l
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
