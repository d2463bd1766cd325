// Package log provides leveled logging for sempress.
// The log messages are intended to be read by people
// so the output is plain text, one entry per line.
package log

import (
	"io"
	"log/slog"
)

// Level specifies the level of logging.
type Level = slog.Level

// Supported log levels.
const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Warn  = slog.LevelWarn
	Error = slog.LevelError
)

// Logger is a leveled logger.
type Logger struct{ *slog.Logger }

// New builds a logger that writes messages at or above lvl
// to the given writer.
func New(w io.Writer, lvl Level) *Logger {
	return &Logger{slog.New(&handler{
		w:     &lockedWriter{W: w},
		level: lvl,
	})}
}

// WithName builds a new logger with the provided name.
// Names nest: a logger named "b" derived from one named "a"
// prefixes its messages with "[a.b]".
// The returned logger is safe to use concurrently with this logger.
func (l *Logger) WithName(name string) *Logger {
	if h, ok := l.Handler().(*handler); ok {
		return &Logger{slog.New(h.withName(name))}
	}
	return &Logger{l.WithGroup(name)}
}
