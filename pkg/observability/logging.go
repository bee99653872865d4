// Package observability provides logger construction for the sigwait CLI.
package observability

import (
	"io"
	"log/slog"
	"os"
)

// LoggingOptions selects the log level and output format.
type LoggingOptions struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string

	// Format is text or json. Defaults to text.
	Format string

	// Output defaults to stderr.
	Output io.Writer
}

// NewLogger builds a structured logger from the given options.
func NewLogger(opts LoggingOptions) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var level slog.Level
	switch opts.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	hopts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(out, hopts)
	} else {
		handler = slog.NewTextHandler(out, hopts)
	}
	return slog.New(handler)
}
