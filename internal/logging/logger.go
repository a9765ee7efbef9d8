package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates a logger for CLI debug output. It writes to Stderr so usage
// text and program results on Stdout stay machine-readable, and
// standardizes the "error" key to "err".
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger. Resolution passes log through this unless
// a caller opts in with WithLogger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
