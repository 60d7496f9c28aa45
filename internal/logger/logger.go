// Package logger provides process logging for the S3 importer.
// Messages are printf-formatted and emitted through log/slog, as text
// for terminals or JSON for CloudWatch. Debug messages are only written
// when verbose mode is enabled via --verbose or configuration.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Output formats accepted by SetFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = FormatText
	level             = new(slog.LevelVar)
	base              = newLogger()
)

func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(output, opts))
	}
	return slog.New(slog.NewTextHandler(output, opts))
}

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = newLogger()
}

// SetFormat switches between FormatText and FormatJSON.
// Unknown formats fall back to text.
func SetFormat(f string) {
	mu.Lock()
	defer mu.Unlock()
	if f != FormatJSON {
		f = FormatText
	}
	format = f
	base = newLogger()
}

// Slog returns the underlying structured logger.
func Slog() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func log(lvl slog.Level, msg string, args []any) {
	mu.RLock()
	l := base
	mu.RUnlock()
	if !l.Enabled(context.Background(), lvl) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.Log(context.Background(), lvl, msg)
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	log(slog.LevelDebug, format, args)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	log(slog.LevelInfo, format, args)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	log(slog.LevelWarn, format, args)
}

// Error logs an error message.
func Error(format string, args ...any) {
	log(slog.LevelError, format, args)
}
