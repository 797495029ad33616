package logx

import "strings"

// Level represents logging level
type Level uint8

const (
	// LevelTrace is the most verbose level
	LevelTrace Level = iota
	// LevelDebug for debugging information
	LevelDebug
	// LevelInfo for informational messages
	LevelInfo
	// LevelWarn for warning messages
	LevelWarn
	// LevelError for error messages
	LevelError
	// LevelFatal for fatal messages (will exit)
	LevelFatal
	// LevelOff disables all logging
	LevelOff
)

var levelNames = map[Level]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
	LevelOff:   "OFF",
}

// String returns the string representation of the log level
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel parses a string into a Level. Unknown values map to LevelInfo.
func ParseLevel(level string) Level {
	upper := strings.ToUpper(strings.TrimSpace(level))
	if upper == "WARNING" {
		return LevelWarn
	}
	for l, name := range levelNames {
		if name == upper {
			return l
		}
	}
	return LevelInfo
}

// Enabled checks if target is emitted under the current level
func (l Level) Enabled(target Level) bool {
	return l <= target && target != LevelOff
}
