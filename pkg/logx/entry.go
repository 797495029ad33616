package logx

import (
	"context"
	"fmt"
)

// Entry allows for building up log entries with multiple fields
type Entry struct {
	logger *Logger
	fields Fields
	data   any
	err    error
	ctx    context.Context
}

func newEntry(logger *Logger) *Entry {
	return &Entry{
		logger: logger,
		fields: make(Fields),
	}
}

// WithField adds a field to the entry (chainable)
func (e *Entry) WithField(key string, value any) *Entry {
	e.fields[key] = value
	return e
}

// WithFields adds multiple fields to the entry (chainable)
func (e *Entry) WithFields(fields Fields) *Entry {
	for k, v := range fields {
		e.fields[k] = v
	}
	return e
}

// WithError attaches an error (chainable)
func (e *Entry) WithError(err error) *Entry {
	e.err = err
	return e
}

// WithContext adds context (chainable)
func (e *Entry) WithContext(ctx context.Context) *Entry {
	e.ctx = ctx
	return e
}

// WithStruct adds structured data (chainable)
func (e *Entry) WithStruct(data any) *Entry {
	e.data = data
	return e
}

func (e *Entry) emit(level Level, msg string) {
	e.logger.log(level, msg, e.fields, e.data, e.err)
}

// Debug logs at debug level
func (e *Entry) Debug(msg string) { e.emit(LevelDebug, msg) }

// Info logs at info level
func (e *Entry) Info(msg string) { e.emit(LevelInfo, msg) }

// Warn logs at warn level
func (e *Entry) Warn(msg string) { e.emit(LevelWarn, msg) }

// Error logs at error level
func (e *Entry) Error(msg string) { e.emit(LevelError, msg) }

// Fatal logs at fatal level and exits
func (e *Entry) Fatal(msg string) {
	e.emit(LevelFatal, msg)
	e.logger.exit(1)
}

// Debugf logs formatted debug message
func (e *Entry) Debugf(format string, args ...any) { e.emit(LevelDebug, fmt.Sprintf(format, args...)) }

// Infof logs formatted info message
func (e *Entry) Infof(format string, args ...any) { e.emit(LevelInfo, fmt.Sprintf(format, args...)) }

// Warnf logs formatted warn message
func (e *Entry) Warnf(format string, args ...any) { e.emit(LevelWarn, fmt.Sprintf(format, args...)) }

// Errorf logs formatted error message
func (e *Entry) Errorf(format string, args ...any) { e.emit(LevelError, fmt.Sprintf(format, args...)) }
