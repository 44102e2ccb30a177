package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/14kear/sso-prettyslog/slogpretty/slogpretty"
)

// New builds the process logger. format is "json", "pretty" (colored, for
// local runs) or "text".
func New(format string, level string) *slog.Logger {
	return NewWithWriter(os.Stdout, format, level)
}

func NewWithWriter(w io.Writer, format string, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "pretty":
		pretty := slogpretty.PrettyHandlerOptions{SlogOpts: opts}
		handler = pretty.NewPrettyHandler(w)
	default:
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
