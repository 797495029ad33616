package logx

import (
	"encoding/json"
	"time"
)

// JSONFormatter formats logs as one JSON object per line
type JSONFormatter struct {
	config *Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(config *Config) *JSONFormatter {
	return &JSONFormatter{config: config}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *LogEntry) ([]byte, error) {
	data := f.payload(entry, "message")

	if f.config.EnableTimestamp {
		switch f.config.TimeFormat {
		case "unix":
			data["timestamp"] = entry.Timestamp.Unix()
		case "unixmilli":
			data["timestamp"] = entry.Timestamp.UnixMilli()
		default:
			data["timestamp"] = entry.Timestamp.Format(time.RFC3339Nano)
		}
	}

	return marshalLine(data)
}

// payload collects the fields shared by the JSON flavours
func (f *JSONFormatter) payload(entry *LogEntry, messageKey string) map[string]any {
	data := make(map[string]any, len(entry.Fields)+4)
	for k, v := range entry.Fields {
		data[k] = v
	}

	data["level"] = entry.Level.String()
	data[messageKey] = entry.Message

	if f.config.EnableCaller && entry.Caller != "" {
		data["caller"] = entry.Caller
	}
	if entry.Error != nil {
		data["error"] = entry.Error.Error()
	}
	if entry.Data != nil {
		data["data"] = entry.Data
	}
	return data
}

// CloudWatchFormatter formats logs for AWS CloudWatch
type CloudWatchFormatter struct {
	*JSONFormatter
}

// NewCloudWatchFormatter creates a new CloudWatch formatter
func NewCloudWatchFormatter(config *Config) *CloudWatchFormatter {
	return &CloudWatchFormatter{JSONFormatter: NewJSONFormatter(config)}
}

// Format formats a log entry for CloudWatch
func (f *CloudWatchFormatter) Format(entry *LogEntry) ([]byte, error) {
	data := f.payload(entry, "msg")
	data["time"] = entry.Timestamp.Format(time.RFC3339Nano)
	if entry.Error != nil {
		data["error_type"] = "error"
	}
	return marshalLine(data)
}

func marshalLine(data map[string]any) ([]byte, error) {
	bytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(bytes, '\n'), nil
}
