package mocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/user/timerreel/pkg/ports"
)

// LogEntry is one recorded log call.
type LogEntry struct {
	Level     string
	Component string
	Message   string
}

type logRecord struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Logger is a mock implementation of ports.Logger that records formatted messages.
type Logger struct {
	rec       *logRecord
	component string
}

// NewLogger creates a recording logger.
func NewLogger() *Logger {
	return &Logger{rec: &logRecord{}}
}

func (l *Logger) record(level, msg string, args []interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()
	l.rec.entries = append(l.rec.entries, LogEntry{Level: level, Component: l.component, Message: msg})
}

// Debug records a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) { l.record("debug", msg, args) }

// Info records an info message.
func (l *Logger) Info(msg string, args ...interface{}) { l.record("info", msg, args) }

// Warn records a warning.
func (l *Logger) Warn(msg string, args ...interface{}) { l.record("warn", msg, args) }

// Error records an error.
func (l *Logger) Error(msg string, args ...interface{}) { l.record("error", msg, args) }

// WithComponent returns a logger sharing the same record.
func (l *Logger) WithComponent(component string) ports.Logger {
	return &Logger{rec: l.rec, component: component}
}

// Entries returns a copy of the recorded entries.
func (l *Logger) Entries() []LogEntry {
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()
	return append([]LogEntry(nil), l.rec.entries...)
}

// HasMessage reports whether a message at level contains substr.
func (l *Logger) HasMessage(level, substr string) bool {
	for _, e := range l.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

var _ ports.Logger = (*Logger)(nil)
