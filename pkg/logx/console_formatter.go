package logx

import (
	"fmt"
	"strings"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorWhite = "\033[97m"

	colorBoldRed    = "\033[1;31m"
	colorBoldYellow = "\033[1;33m"
	colorBoldCyan   = "\033[1;36m"
	colorBoldGreen  = "\033[1;32m"
)

var levelColors = map[Level]string{
	LevelTrace: colorGray,
	LevelDebug: colorBoldCyan,
	LevelInfo:  colorBoldGreen,
	LevelWarn:  colorBoldYellow,
	LevelError: colorBoldRed,
	LevelFatal: colorBoldRed,
}

// ConsoleFormatter formats logs for console output with colors
type ConsoleFormatter struct {
	config *Config
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(config *Config) *ConsoleFormatter {
	return &ConsoleFormatter{config: config}
}

func (f *ConsoleFormatter) paint(b *strings.Builder, color, text string) {
	if f.config.EnableColors && color != "" {
		b.WriteString(color)
		b.WriteString(text)
		b.WriteString(colorReset)
		return
	}
	b.WriteString(text)
}

// Format formats a log entry for console output
func (f *ConsoleFormatter) Format(entry *LogEntry) ([]byte, error) {
	var b strings.Builder

	if f.config.EnableTimestamp {
		f.paint(&b, colorGray, formatTimestamp(entry.Timestamp, f.config.TimeFormat))
		b.WriteString(" ")
	}

	f.paint(&b, levelColors[entry.Level], fmt.Sprintf("[%-5s]", entry.Level.String()))
	b.WriteString(" ")

	if f.config.EnableCaller && entry.Caller != "" {
		f.paint(&b, colorGray, "["+entry.Caller+"]")
		b.WriteString(" ")
	}

	f.paint(&b, colorWhite, entry.Message)

	if len(entry.Fields) > 0 {
		pairs := make([]string, 0, len(entry.Fields))
		for _, k := range entry.Fields.sortedKeys() {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, entry.Fields[k]))
		}
		b.WriteString(" ")
		f.paint(&b, colorCyan, strings.Join(pairs, " "))
	}

	if entry.Error != nil {
		b.WriteString("\n")
		f.paint(&b, colorRed, "  error: "+entry.Error.Error())
	}
	b.WriteString("\n")

	if entry.Data != nil {
		for _, line := range strings.Split(prettyJSON(entry.Data), "\n") {
			f.paint(&b, colorGray, "  "+line)
			b.WriteString("\n")
		}
	}

	return []byte(b.String()), nil
}
