// Package ports defines the interfaces between the render pipeline and its adapters.
package ports

import "strings"

// LogLevel is the minimum severity a logger emits.
type LogLevel int

const (
	// LevelDebug covers per-frame and per-sample details from the stages.
	LevelDebug LogLevel = iota
	// LevelInfo covers render start, encoder choice and the final output.
	LevelInfo
	// LevelWarn covers problems the render survives, like a failed debug write.
	LevelWarn
	// LevelError covers failures that abort the render.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

var levelNames = map[LogLevel]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelQuiet: "quiet",
}

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLogLevel parses a level name case-insensitively.
// "warning" is accepted for warn; anything unknown yields LevelInfo.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return LevelWarn
	}
	for level, name := range levelNames {
		if name == s {
			return level
		}
	}
	return LevelInfo
}

// Logger is the logging port. Messages are l10n keys in printf form;
// adapters translate them before formatting.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that tags lines with the component name
	// (layout, composite, encode, h264, mp4).
	WithComponent(component string) Logger
}
