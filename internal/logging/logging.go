// Package logging builds the structured slog logger from LoggingConfig and
// can carry it through context.Context, so code several calls deep from
// main can log without an explicit parameter.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ionfleet/fleetctl/internal/config"
)

type contextKey int

const loggerKey contextKey = iota

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from ctx, or returns slog.Default() if
// none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// New builds a slog.Logger from LoggingConfig: level, text/json format, and
// stdout/stderr/file output.
func New(cfg config.LoggingConfig) (*slog.Logger, error) {
	level := parseLevel(cfg.Level)

	var w io.Writer
	switch cfg.Output {
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
	case "stderr":
		w = os.Stderr
	default:
		w = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler), nil
}

func parseLevel(level string) slog.Level {
	switch level {
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
