// Package log wraps slog with a component tag, an append-only file handler
// and a timing helper.
package log

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with a fixed component attribute.
type Logger struct {
	*slog.Logger
	component string
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

// New creates a logger with the given configuration. A nil handler falls
// back to text on stdout.
func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: config.Level})
	}
	return &Logger{
		Logger:    slog.New(handler),
		component: config.Component,
	}
}

// FileHandler opens path for appending and returns a text handler writing to
// it. The caller owns the returned closer.
func FileHandler(path string, level slog.Level) (slog.Handler, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}), f, nil
}

// WithComponent returns a logger tagged with a different component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger,
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// Info logs at Info level with the component attribute.
func (l *Logger) Info(msg string, args ...any) {
	l.Logger.Info(msg, append([]any{FieldComponent, l.component}, args...)...)
}

// Warn logs at Warn level with the component attribute.
func (l *Logger) Warn(msg string, args ...any) {
	l.Logger.Warn(msg, append([]any{FieldComponent, l.component}, args...)...)
}

// Error logs at Error level with the component attribute.
func (l *Logger) Error(msg string, args ...any) {
	l.Logger.Error(msg, append([]any{FieldComponent, l.component}, args...)...)
}

// Debug logs at Debug level with the component attribute.
func (l *Logger) Debug(msg string, args ...any) {
	l.Logger.Debug(msg, append([]any{FieldComponent, l.component}, args...)...)
}

// Timed logs the duration of an operation. Use as:
//
//	defer l.Timed("querying range")()
func (l *Logger) Timed(operation string, args ...any) func() {
	start := time.Now()
	return func() {
		all := append([]any{
			FieldComponent, l.component,
			FieldOperation, operation,
			FieldDuration, time.Since(start).Milliseconds(),
		}, args...)
		l.Logger.Info("operation completed", all...)
	}
}

// SetDefault installs the logger's underlying slog.Logger as the default.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}
