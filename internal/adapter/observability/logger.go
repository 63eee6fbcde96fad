// Package observability provides the structured logger the scan use case
// reports progress and warnings through.
package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

// LogLevel defines the logging verbosity level.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelSilent
)

// LogFormat defines the output format for logs.
type LogFormat int

const (
	LogFormatHuman LogFormat = iota
	LogFormatJSON
)

// ParseLevel maps a config label to a LogLevel. Unknown labels get info.
func ParseLevel(value string) LogLevel {
	switch strings.ToLower(value) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarning
	case "silent", "off":
		return LogLevelSilent
	default:
		return LogLevelInfo
	}
}

// ParseFormat maps a config label to a LogFormat. Unknown labels get human.
func ParseFormat(value string) LogFormat {
	if strings.EqualFold(value, "json") {
		return LogFormatJSON
	}
	return LogFormatHuman
}

// ScanLogger writes scan events in structured format via the standard
// logger. It implements the scan.Logger interface.
type ScanLogger struct {
	level  LogLevel
	format LogFormat
	now    func() time.Time
}

// NewScanLogger creates a logger with the specified config.
func NewScanLogger(level LogLevel, format LogFormat) *ScanLogger {
	return &ScanLogger{level: level, format: format, now: time.Now}
}

// LogInfo logs an informational message with structured fields.
func (l *ScanLogger) LogInfo(ctx context.Context, message string, fields map[string]interface{}) {
	if l.level > LogLevelInfo {
		return
	}
	l.emit("info", message, fields)
}

// LogWarning logs a warning message with structured fields.
func (l *ScanLogger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	if l.level > LogLevelWarning {
		return
	}
	l.emit("warning", message, fields)
}

func (l *ScanLogger) emit(level, message string, fields map[string]interface{}) {
	if l.format == LogFormatJSON {
		entry := map[string]interface{}{
			"level":     level,
			"message":   message,
			"timestamp": l.now().Format(time.RFC3339),
		}
		for key, value := range fields {
			entry[key] = value
		}
		encoded, err := json.Marshal(entry)
		if err != nil {
			log.Printf(`{"level":"%s","message":"%s"}`, level, message)
			return
		}
		log.Printf("%s", encoded)
		return
	}

	log.Printf("[%s] %s%s", strings.ToUpper(level), message, formatFields(fields))
}

// formatFields renders fields as sorted key=value pairs for the human
// format, so log lines are stable and grep-friendly.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(" (")
	for i, key := range keys {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(fmt.Sprintf("%s=%v", key, fields[key]))
	}
	builder.WriteString(")")
	return builder.String()
}
