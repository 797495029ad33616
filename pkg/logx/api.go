package logx

import (
	"context"
	"fmt"
	"io"
)

var defaultLogger *Logger

func init() {
	defaultLogger = NewLogger(LoadFromEnv())
}

// SetDefaultLogger sets the default logger
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the default logger
func GetDefaultLogger() *Logger {
	return defaultLogger
}

// SetLevel sets the log level for the default logger
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetOutput sets the output for the default logger
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// Debug logs a debug level message
func Debug(msg string) { defaultLogger.log(LevelDebug, msg, nil, nil, nil) }

// Info logs an info level message
func Info(msg string) { defaultLogger.log(LevelInfo, msg, nil, nil, nil) }

// Warn logs a warning level message
func Warn(msg string) { defaultLogger.log(LevelWarn, msg, nil, nil, nil) }

// Error logs an error level message
func Error(msg string) { defaultLogger.log(LevelError, msg, nil, nil, nil) }

// Debugf logs a formatted debug message
func Debugf(format string, args ...any) {
	defaultLogger.log(LevelDebug, fmt.Sprintf(format, args...), nil, nil, nil)
}

// Infof logs a formatted info message
func Infof(format string, args ...any) {
	defaultLogger.log(LevelInfo, fmt.Sprintf(format, args...), nil, nil, nil)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...any) {
	defaultLogger.log(LevelWarn, fmt.Sprintf(format, args...), nil, nil, nil)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...any) {
	defaultLogger.log(LevelError, fmt.Sprintf(format, args...), nil, nil, nil)
}

// Fatalf logs a formatted fatal message and exits
func Fatalf(format string, args ...any) {
	defaultLogger.log(LevelFatal, fmt.Sprintf(format, args...), nil, nil, nil)
	defaultLogger.exit(1)
}

// WithFields creates a new logger entry with fields
func WithFields(fields Fields) *Entry {
	return defaultLogger.WithFields(fields)
}

// WithField creates a new logger entry with a single field
func WithField(key string, value any) *Entry {
	return defaultLogger.WithField(key, value)
}

// WithContext creates a new logger entry with context
func WithContext(ctx context.Context) *Entry {
	return newEntry(defaultLogger).WithContext(ctx)
}

// WithError creates a new logger entry with an error field
func WithError(err error) *Entry {
	return defaultLogger.WithError(err)
}
