// Package model provides a debug logger for tracing API interactions.
package model

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarn:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// DebugLogger writes optional diagnostic output to stderr. It is off by
// default and enabled with FLUXREG_DEBUG; FLUXREG_LOG_LEVEL and
// FLUXREG_JSON_LOGS tune verbosity and format.
type DebugLogger struct {
	level    LogLevel
	logger   *log.Logger
	enabled  bool
	jsonMode bool
}

var defaultLogger *DebugLogger

func init() {
	defaultLogger = NewDebugLogger()
}

// NewDebugLogger creates a debug logger configured from environment variables
func NewDebugLogger() *DebugLogger {
	l := &DebugLogger{
		level:  LogLevelDebug,
		logger: log.New(os.Stderr, "", 0),
	}

	if mode := os.Getenv("FLUXREG_DEBUG"); mode != "" {
		l.enabled = strings.ToLower(mode) == "true" || mode == "1"
	}
	if level := os.Getenv("FLUXREG_LOG_LEVEL"); level != "" {
		l.level = parseLogLevel(level)
	}
	if mode := os.Getenv("FLUXREG_JSON_LOGS"); mode != "" {
		l.jsonMode = strings.ToLower(mode) == "true" || mode == "1"
	}

	return l
}

func parseLogLevel(level string) LogLevel {
	switch strings.ToUpper(level) {
	case "ERROR":
		return LogLevelError
	case "WARN", "WARNING":
		return LogLevelWarn
	case "INFO":
		return LogLevelInfo
	case "DEBUG":
		return LogLevelDebug
	default:
		return LogLevelDebug
	}
}

// SetEnabled enables or disables debug logging
func (d *DebugLogger) SetEnabled(enabled bool) {
	d.enabled = enabled
}

// IsEnabled returns whether debug logging is enabled
func (d *DebugLogger) IsEnabled() bool {
	return d.enabled
}

// logMessage is the structured form written in JSON mode
type logMessage struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Operation string    `json:"operation,omitempty"`
	URL       string    `json:"url,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func (d *DebugLogger) log(level LogLevel, message, operation, url string, err error) {
	if !d.enabled || level > d.level {
		return
	}

	msg := logMessage{
		Timestamp: time.Now().UTC(),
		Level:     level.String(),
		Message:   message,
		Operation: operation,
		URL:       url,
	}
	if err != nil {
		msg.Error = err.Error()
	}

	if d.jsonMode {
		data, marshalErr := json.Marshal(msg)
		if marshalErr != nil {
			d.logger.Printf("ERROR: failed to marshal log message: %v", marshalErr)
			return
		}
		d.logger.Println(string(data))
		return
	}

	parts := []string{
		msg.Timestamp.Format("2006-01-02T15:04:05.000Z"),
		fmt.Sprintf("[%s]", msg.Level),
		msg.Message,
	}
	if msg.Operation != "" {
		parts = append(parts, fmt.Sprintf("operation=%s", msg.Operation))
	}
	if msg.URL != "" {
		parts = append(parts, fmt.Sprintf("url=%s", msg.URL))
	}
	if msg.Error != "" {
		parts = append(parts, fmt.Sprintf("error=%q", msg.Error))
	}
	d.logger.Println(strings.Join(parts, " "))
}

// LogDebug logs a debug-level message on the default logger
func LogDebug(message, operation, url string) {
	defaultLogger.log(LogLevelDebug, message, operation, url, nil)
}

// LogError logs an error-level message on the default logger
func LogError(message, operation, url string, err error) {
	defaultLogger.log(LogLevelError, message, operation, url, err)
}
