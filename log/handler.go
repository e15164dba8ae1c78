// Package log provides structured logging (slog) helpers for hosts embedding
// the engine.
package log

import (
	"io"
	"log/slog"
)

// HandlerOption configures the handler returned by NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Level
	addSource bool
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// NewHandler creates a text handler writing to w, tagged with the component
// attribute the engine's records carry.
func NewHandler(w io.Writer, opts ...HandlerOption) slog.Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     cfg.level,
		AddSource: cfg.addSource,
	})
	return h.WithAttrs([]slog.Attr{slog.String("component", "scriptbox")})
}

// Nop returns a logger that discards every record. It is the engine default.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
