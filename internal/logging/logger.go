// Package logging provides centralized structured logging for the application.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel selects the minimum level that gets emitted.
type LogLevel string

const (
	// LevelDebug for detailed troubleshooting information.
	LevelDebug LogLevel = "debug"
	// LevelInfo for general operational information.
	LevelInfo LogLevel = "info"
	// LevelWarn for potentially harmful situations.
	LevelWarn LogLevel = "warn"
	// LevelError for failures that end the current operation.
	LevelError LogLevel = "error"
)

// defaultLogger is the logger the package-level functions write to.
var defaultLogger *slog.Logger

// init configures the default logger from the LOG_LEVEL environment
// variable. Logs go to stderr: stdout is reserved for chart and table
// output so it stays pipeable.
func init() {
	level := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if level == "" {
		level = string(LevelInfo)
	}
	SetupLogger(os.Stderr, LogLevel(level))
}

// SetupLogger configures the logger with the specified output and level.
func SetupLogger(w io.Writer, level LogLevel) {
	opts := &slog.HandlerOptions{
		Level: slogLevel(level),
	}
	defaultLogger = slog.New(slog.NewTextHandler(w, opts))
	slog.SetDefault(defaultLogger)
}

// slogLevel maps a LogLevel onto slog's levels, treating unknown values
// as info.
func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs a message at debug level.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs a message at info level.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a message at warn level.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs a message at error level.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// MaskSensitive masks sensitive data for logging.
func MaskSensitive(value string) string {
	if value == "" {
		return "<not set>"
	}
	if len(value) <= 4 {
		return "<set>"
	}
	return value[:4] + "..." + strings.Repeat("*", 3)
}
