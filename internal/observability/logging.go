// Package observability provides structured logging and Prometheus metrics
// for the treeminer CLI: a text or JSON slog handler and a small registry of
// mining-run gauges/counters served over an optional HTTP endpoint.
package observability

import (
	"log/slog"
	"os"
)

// LogConfig selects the logger's output format and minimum level.
type LogConfig struct {
	JSON  bool
	Level slog.Level
}

// NewLogger builds a slog.Logger writing to stderr, as text or JSON per cfg.
func NewLogger(cfg LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
