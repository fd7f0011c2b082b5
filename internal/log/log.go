// ABOUTME: Leveled logging wrapper around slog levels for the agent core
// ABOUTME: Global level via SetLevel; writes to stderr to stay clear of any host UI

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level atomic.Int64
	out   io.Writer = os.Stderr
)

func init() {
	level.Store(int64(LevelInfo))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// SetOutput redirects log output, primarily for tests.
func SetOutput(w io.Writer) {
	out = w
}

func logf(l slog.Level, tag, format string, args ...any) {
	if slog.Level(level.Load()) > l {
		return
	}
	fmt.Fprintf(out, "["+tag+"] "+format+"\n", args...)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	logf(LevelDebug, "DEBUG", format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	logf(LevelInfo, "INFO", format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	logf(LevelWarn, "WARN", format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	logf(LevelError, "ERROR", format, args...)
}
