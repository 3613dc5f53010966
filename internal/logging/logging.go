// Package logging provides the structured logger used by the CLI and the
// storage layer. Analyzer packages take a *slog.Logger instead; NewSlog
// bridges the two so one configuration drives both.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"
)

// Level is the severity of a log message.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

var levelPriority = map[Level]int{
	DebugLevel: 0,
	InfoLevel:  1,
	WarnLevel:  2,
	ErrorLevel: 3,
}

// Format selects the log output encoding.
type Format string

const (
	// JSONFormat emits one JSON object per line.
	JSONFormat Format = "json"
	// HumanFormat emits timestamped human-readable lines.
	HumanFormat Format = "human"
)

// Config holds logger configuration.
type Config struct {
	Format Format
	Level  Level
	Output io.Writer // defaults to stderr so report output stays clean
}

// Logger writes structured log lines.
type Logger struct {
	config Config
	writer io.Writer
}

// NewLogger creates a logger. Unknown levels log everything at info and up.
func NewLogger(config Config) *Logger {
	writer := config.Output
	if writer == nil {
		writer = os.Stderr
	}
	return &Logger{config: config, writer: writer}
}

type entry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func (l *Logger) enabled(level Level) bool {
	min, ok := levelPriority[l.config.Level]
	if !ok {
		min = levelPriority[InfoLevel]
	}
	return levelPriority[level] >= min
}

func (l *Logger) log(level Level, message string, fields map[string]any) {
	if !l.enabled(level) {
		return
	}

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    fields,
	}

	if l.config.Format == JSONFormat {
		data, err := json.Marshal(e)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to marshal log entry: %v\n", err)
			return
		}
		fmt.Fprintln(l.writer, string(data))
		return
	}

	fmt.Fprintf(l.writer, "%s [%s] %s", e.Timestamp, e.Level, e.Message)
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprint(l.writer, " |")
		for _, k := range keys {
			fmt.Fprintf(l.writer, " %s=%v", k, e.Fields[k])
		}
	}
	fmt.Fprintln(l.writer)
}

// Debug logs a debug message.
func (l *Logger) Debug(message string, fields map[string]any) {
	l.log(DebugLevel, message, fields)
}

// Info logs an info message.
func (l *Logger) Info(message string, fields map[string]any) {
	l.log(InfoLevel, message, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(message string, fields map[string]any) {
	l.log(WarnLevel, message, fields)
}

// Error logs an error message.
func (l *Logger) Error(message string, fields map[string]any) {
	l.log(ErrorLevel, message, fields)
}

// NewSlog returns a *slog.Logger matching the given configuration, for the
// analyzer packages.
func NewSlog(config Config) *slog.Logger {
	writer := config.Output
	if writer == nil {
		writer = os.Stderr
	}

	var level slog.Level
	switch config.Level {
	case DebugLevel:
		level = slog.LevelDebug
	case WarnLevel:
		level = slog.LevelWarn
	case ErrorLevel:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if config.Format == JSONFormat {
		return slog.New(slog.NewJSONHandler(writer, opts))
	}
	return slog.New(slog.NewTextHandler(writer, opts))
}
