// Package log provides structured logging for gumshoe.
//
// It defines a Logger interface backed by Go's stdlib slog so that
// subsystems stay testable. Components accept a Logger through their
// options structs and fall back to the global default.
//
// Output semantics:
//   - Conversation output (stdout): the streamed assistant reply
//   - Diagnostic logging (stderr): Debug, Info, Warn, Error messages
//
// Verbosity levels:
//   - ERROR (--quiet): failures only
//   - WARN (default): recoverable problems (failed scrape, empty search)
//   - INFO (--verbose): pipeline progress (query, selection, validation)
//   - DEBUG (--debug): raw model answers and request details
package log

import (
	"log/slog"
	"sync"
)

// Logger is the interface for structured logging.
// Methods match slog's signature for easy integration.
type Logger interface {
	// Debug logs at DEBUG level. Use for raw model output, request
	// payloads and other troubleshooting detail.
	Debug(msg string, args ...any)

	// Info logs at INFO level. Use for pipeline progress like
	// "generated search query" or "selected candidate".
	Info(msg string, args ...any)

	// Warn logs at WARN level. Use for recoverable issues like
	// "page scrape failed, trying next candidate".
	Warn(msg string, args ...any)

	// Error logs at ERROR level. Use for failures that end the
	// current operation.
	Error(msg string, args ...any)

	// With returns a Logger that includes the given key-value pairs
	// in all subsequent log entries.
	With(args ...any) Logger
}

// slogLogger wraps slog.Logger to implement the Logger interface.
type slogLogger struct {
	l *slog.Logger
}

// New creates a Logger backed by slog with the given handler.
func New(h slog.Handler) Logger {
	return &slogLogger{l: slog.New(h)}
}

func (s *slogLogger) Debug(msg string, args ...any) {
	s.l.Debug(msg, args...)
}

func (s *slogLogger) Info(msg string, args ...any) {
	s.l.Info(msg, args...)
}

func (s *slogLogger) Warn(msg string, args ...any) {
	s.l.Warn(msg, args...)
}

func (s *slogLogger) Error(msg string, args ...any) {
	s.l.Error(msg, args...)
}

func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

// noopLogger discards all log output.
type noopLogger struct{}

// NewNoop returns a logger that discards all output.
// Useful for testing or when logging should be disabled.
func NewNoop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) With(...any) Logger   { return noopLogger{} }

// defaultLogger is the global logger instance.
var (
	defaultLogger Logger = noopLogger{}
	defaultMu     sync.RWMutex
)

// Default returns the global logger configured at startup.
// Returns a noop logger if SetDefault has not been called.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the global logger.
// This should be called once during program initialization,
// typically in main() after parsing verbosity flags.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
