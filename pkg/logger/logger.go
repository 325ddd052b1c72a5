// Package logger provides the small leveled logger used for diagnostics.
// Output goes to a writer (stderr in the CLI) so it never mixes with the chat.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"sync"
	"time"
)

// Logger is the logging interface used by the library.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type writerLogger struct {
	mu     *sync.Mutex
	w      io.Writer
	now    func() time.Time
	fields map[string]any
}

// NewWriterLogger builds a logger that writes to an io.Writer.
func NewWriterLogger(w io.Writer) Logger {
	return writerLogger{mu: &sync.Mutex{}, w: w, now: time.Now}
}

// With returns a logger that merges fields into every map-typed log object.
// Loggers that are not writer loggers are returned unchanged.
func With(l Logger, fields map[string]any) Logger {
	wl, ok := l.(writerLogger)
	if !ok {
		return l
	}
	merged := make(map[string]any, len(wl.fields)+len(fields))
	maps.Copy(merged, wl.fields)
	maps.Copy(merged, fields)
	wl.fields = merged
	return wl
}

func (l writerLogger) write(level, msg string, obj any) {
	if l.w == nil {
		return
	}
	obj = l.merge(obj)

	ts := l.now().Format(time.RFC3339)
	var line string
	if obj == nil {
		line = fmt.Sprintf("%s %-5s %s\n", ts, level, msg)
	} else if b, err := json.Marshal(obj); err != nil {
		line = fmt.Sprintf("%s %-5s %s obj=%q\n", ts, level, msg, fmt.Sprintf("%+v", obj))
	} else {
		line = fmt.Sprintf("%s %-5s %s obj=%s\n", ts, level, msg, b)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, line)
}

func (l writerLogger) merge(obj any) any {
	if len(l.fields) == 0 {
		return obj
	}
	if obj == nil {
		return l.fields
	}
	m, ok := obj.(map[string]any)
	if !ok {
		return obj
	}
	merged := make(map[string]any, len(l.fields)+len(m))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, m)
	return merged
}

func (l writerLogger) Info(msg string, obj any)  { l.write("INFO", msg, obj) }
func (l writerLogger) Warn(msg string, obj any)  { l.write("WARN", msg, obj) }
func (l writerLogger) Debug(msg string, obj any) { l.write("DEBUG", msg, obj) }
func (l writerLogger) Error(msg string, obj any) { l.write("ERROR", msg, obj) }

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, obj any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}

// Error writes an error log when logger is non-nil.
func Error(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Error(msg, obj)
}
