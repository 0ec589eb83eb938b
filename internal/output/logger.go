package output

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
)

// LogLevel represents the importance level of a log message
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LogFormat represents the output format for logs
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     LogLevel       `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
	Caller    string         `json:"caller,omitempty"`
}

// Logger handles structured logging with multiple outputs and formats.
// Navigation logs never share the terminal with the menu frames, so the
// default logger stays quiet until the host raises the level or points it
// at a file.
type Logger struct {
	level         LogLevel
	format        LogFormat
	outputs       []io.Writer
	fields        map[string]any
	includeCaller bool
}

// NewLogger creates a new structured logger writing to stderr at error level.
func NewLogger() *Logger {
	return &Logger{
		level:   LogLevelError,
		format:  LogFormatText,
		outputs: []io.Writer{os.Stderr},
		fields:  make(map[string]any),
	}
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level LogLevel) *Logger {
	l.level = level
	return l
}

// SetFormat sets the output format (text or JSON)
func (l *Logger) SetFormat(format LogFormat) *Logger {
	l.format = format
	return l
}

// SetOutputs replaces all output writers
func (l *Logger) SetOutputs(outputs ...io.Writer) *Logger {
	l.outputs = outputs
	return l
}

// WithField returns a logger that includes the field in all entries.
func (l *Logger) WithField(key string, value any) *Logger {
	newLogger := &Logger{
		level:         l.level,
		format:        l.format,
		outputs:       l.outputs,
		fields:        make(map[string]any),
		includeCaller: l.includeCaller,
	}
	maps.Copy(newLogger.fields, l.fields)
	newLogger.fields[key] = value
	return newLogger
}

// EnableCaller includes caller information in log entries
func (l *Logger) EnableCaller() *Logger {
	l.includeCaller = true
	return l
}

func (l *Logger) log(level LogLevel, message string, fields ...map[string]any) {
	if level < l.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(map[string]any),
	}

	maps.Copy(entry.Fields, l.fields)
	for _, fieldMap := range fields {
		maps.Copy(entry.Fields, fieldMap)
	}

	if l.includeCaller {
		if pc, file, line, ok := runtime.Caller(2); ok {
			funcName := runtime.FuncForPC(pc).Name()
			entry.Caller = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, filepath.Base(funcName))
		}
	}

	if len(entry.Fields) == 0 {
		entry.Fields = nil
	}

	l.writeEntry(entry)
}

func (l *Logger) writeEntry(entry LogEntry) {
	var out string

	switch l.format {
	case LogFormatJSON:
		if data, err := json.Marshal(entry); err == nil {
			out = string(data) + "\n"
		} else {
			out = fmt.Sprintf(`{"level":"ERROR","message":"Failed to marshal log entry: %v"}%s`, err, "\n")
		}
	case LogFormatText:
		out = l.formatTextEntry(entry)
	}

	for _, w := range l.outputs {
		fmt.Fprint(w, out)
	}
}

func (l *Logger) formatTextEntry(entry LogEntry) string {
	var parts []string

	parts = append(parts, entry.Timestamp.Format("15:04:05"))
	parts = append(parts, fmt.Sprintf("[%s]", entry.Level))

	if entry.Caller != "" {
		parts = append(parts, fmt.Sprintf("(%s)", entry.Caller))
	}

	parts = append(parts, entry.Message)

	if len(entry.Fields) > 0 {
		parts = append(parts, formatFields(entry.Fields))
	}

	return strings.Join(parts, " ") + "\n"
}

func formatFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return fmt.Sprintf("[%s]", strings.Join(pairs, " "))
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...map[string]any) {
	l.log(LogLevelDebug, message, fields...)
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...map[string]any) {
	l.log(LogLevelInfo, message, fields...)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields ...map[string]any) {
	l.log(LogLevelWarn, message, fields...)
}

// Error logs an error message
func (l *Logger) Error(message string, fields ...map[string]any) {
	l.log(LogLevelError, message, fields...)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...any) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

// CreateFileLogger creates a logger that writes to a file
func CreateFileLogger(filename string, level LogLevel, format LogFormat) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := NewLogger().
		SetLevel(level).
		SetFormat(format).
		SetOutputs(file)

	return logger, nil
}

// Global logger instance
var globalLogger = NewLogger()

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalLogger = logger
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return globalLogger
}

// Debug - Global logging functions that use the global logger
func Debug(message string, fields ...map[string]any) {
	globalLogger.Debug(message, fields...)
}

func Info(message string, fields ...map[string]any) {
	globalLogger.Info(message, fields...)
}

func Warn(message string, fields ...map[string]any) {
	globalLogger.Warn(message, fields...)
}

func Error(message string, fields ...map[string]any) {
	globalLogger.Error(message, fields...)
}
