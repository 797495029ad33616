package logx

import (
	"io"
	"os"
	"strings"
	"time"
)

// Format represents the output format
type Format string

const (
	// FormatConsole outputs colored console logs (default)
	FormatConsole Format = "console"
	// FormatJSON outputs JSON formatted logs
	FormatJSON Format = "json"
	// FormatCloudWatch outputs CloudWatch compatible JSON
	FormatCloudWatch Format = "cloudwatch"
)

// Config holds the logger configuration
type Config struct {
	Level  Level
	Format Format

	// EnableColors only applies to the console format
	EnableColors    bool
	EnableCaller    bool
	EnableTimestamp bool

	// TimeFormat accepts a Go layout or "unix"/"unixmilli"
	TimeFormat string

	// Output defaults to os.Stdout
	Output io.Writer
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Level:           LevelInfo,
		Format:          FormatConsole,
		EnableColors:    true,
		EnableTimestamp: true,
		TimeFormat:      time.RFC3339,
		Output:          os.Stdout,
	}
}

// LoadFromEnv loads configuration from LOG_* environment variables
func LoadFromEnv() *Config {
	config := DefaultConfig()

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = ParseLevel(level)
	}

	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		config.Format = FormatJSON
	case "cloudwatch":
		config.Format = FormatCloudWatch
	case "console":
		config.Format = FormatConsole
	}

	if color := os.Getenv("LOG_COLOR"); color != "" {
		config.EnableColors = envBool(color)
	}
	if caller := os.Getenv("LOG_CALLER"); caller != "" {
		config.EnableCaller = envBool(caller)
	}

	if timeFormat := os.Getenv("LOG_TIME_FORMAT"); timeFormat != "" {
		switch strings.ToUpper(timeFormat) {
		case "RFC3339":
			config.TimeFormat = time.RFC3339
		case "RFC3339NANO":
			config.TimeFormat = time.RFC3339Nano
		case "UNIX":
			config.TimeFormat = "unix"
		case "UNIXMILLI":
			config.TimeFormat = "unixmilli"
		default:
			config.TimeFormat = timeFormat
		}
	}

	return config
}

func envBool(v string) bool {
	return strings.EqualFold(v, "true") || v == "1"
}
