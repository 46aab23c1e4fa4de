// Package log provides structured logging setup for matrix staging
// operations, built on log/slog with cockroachdb/errors stack trace
// extraction.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// SetupLogger function setup the default slog logger with JSON output.
func SetupLogger(loglevel string) {
	SetupLoggerTo(loglevel, os.Stdout)
}

// SetupLoggerTo is SetupLogger with an explicit output destination, used by
// tests to capture log output.
func SetupLoggerTo(loglevel string, w io.Writer) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(w, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
}

// ToLogLevel converts a level name to a slog.Level, panicking on an unknown
// name.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
