package ooxml

import (
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
)

// LogLevel represents the severity threshold of a Logger
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
	LogOff
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DEBUG"
	case LogInfo:
		return "INFO"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	case LogOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogInfo:
		return slog.LevelInfo
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

func parseLogLevel(levelStr string) LogLevel {
	switch levelStr {
	case "debug":
		return LogDebug
	case "info":
		return LogInfo
	case "warn":
		return LogWarn
	case "error":
		return LogError
	case "off":
		return LogOff
	default:
		return LogInfo
	}
}

// Fields holds structured key/value pairs attached to log records
type Fields map[string]interface{}

// Logger is a leveled structured logger. Loggers derived with WithField
// share their parent's level.
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	mu     *sync.Mutex
	cur    *LogLevel
}

var (
	globalLogger     *Logger
	globalLoggerOnce sync.Once
)

func initGlobalLogger() {
	globalLoggerOnce.Do(func() {
		config := GetGlobalConfig()
		globalLogger = NewLogger(os.Stderr, parseLogLevel(config.LogLevel))
	})
}

// NewLogger writes key=value records to w at or above level.
func NewLogger(w io.Writer, level LogLevel) *Logger {
	if w == nil {
		w = io.Discard
	}
	lv := new(slog.LevelVar)
	lv.Set(level.slogLevel())
	cur := level
	return &Logger{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})),
		level:  lv,
		mu:     new(sync.Mutex),
		cur:    &cur,
	}
}

// SetLevel sets the minimum level, for l and every logger derived from it
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.cur = level
	l.level.Set(level.slogLevel())
}

// Level returns the current minimum level
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *l.cur
}

// IsDebugMode returns true if debug logging is enabled
func (l *Logger) IsDebugMode() bool {
	return l.Level() == LogDebug
}

// WithField returns a logger that adds key=value to every record
func (l *Logger) WithField(key string, value interface{}) *Logger {
	derived := *l
	derived.logger = l.logger.With(key, value)
	return &derived
}

// WithFields returns a logger that adds all fields, in key order, to every record
func (l *Logger) WithFields(fields Fields) *Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	derived := *l
	derived.logger = l.logger.With(args...)
	return &derived
}

// Slog exposes the underlying *slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// Debug logs a debug message with optional key/value args
func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

// Info logs an info message with optional key/value args
func (l *Logger) Info(msg string, args ...any) { l.logger.Info(msg, args...) }

// Warn logs a warning message with optional key/value args
func (l *Logger) Warn(msg string, args ...any) { l.logger.Warn(msg, args...) }

// Error logs an error message with optional key/value args
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// SetLogger replaces the global logger
func SetLogger(logger *Logger) {
	initGlobalLogger()
	globalLogger = logger
}

// GetLogger returns the global logger
func GetLogger() *Logger {
	initGlobalLogger()
	return globalLogger
}

// UpdateLoggerFromConfig updates the global logger based on the current global configuration
func UpdateLoggerFromConfig() {
	config := GetGlobalConfig()
	GetLogger().SetLevel(parseLogLevel(config.LogLevel))
}
