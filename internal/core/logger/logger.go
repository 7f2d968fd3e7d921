// Package logger is the process-wide structured logging facade. Entries go to
// slog on a terminal or to an OpenTelemetry collector in production.
package logger

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelFatal LogLevel = "FATAL"
)

func (l LogLevel) rank() int {
	switch l {
	case LogLevelDebug:
		return 0
	case LogLevelInfo:
		return 1
	case LogLevelWarn:
		return 2
	case LogLevelError:
		return 3
	case LogLevelFatal:
		return 4
	default:
		return 1
	}
}

// ParseLevel maps names such as "debug" or "WARN" to a level; unknown names
// fall back to INFO.
func ParseLevel(name string) LogLevel {
	level := LogLevel(strings.ToUpper(strings.TrimSpace(name)))
	switch level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelFatal:
		return level
	default:
		return LogLevelInfo
	}
}

type attributes = map[string]any

type LogEntry struct {
	Level      LogLevel
	Message    string
	Attributes attributes
	Error      error
	Timestamp  time.Time
}

type Logger interface {
	Log(ctx context.Context, entry LogEntry)
	Shutdown(ctx context.Context) error
}

type Options struct {
	CollectorEndpoint string
	ServiceName       string
	Environment       string
	Level             LogLevel
	IsProduction      bool
}

type noopLogger struct{}

func (noopLogger) Log(context.Context, LogEntry)  {}
func (noopLogger) Shutdown(context.Context) error { return nil }

var (
	globalLogger Logger = noopLogger{}
	minRank      atomic.Int32
)

func newLogEntry(level LogLevel, message string, err error, attrs attributes) LogEntry {
	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		enriched := make(attributes, len(attrs)+1)
		for key, value := range attrs {
			enriched[key] = value
		}
		enriched["error.kind"] = svcErr.Kind.String()
		attrs = enriched
	}
	return LogEntry{
		Level:      level,
		Message:    message,
		Attributes: attrs,
		Error:      err,
		Timestamp:  time.Now(),
	}
}

func Debug(ctx context.Context, message string, attrs attributes) {
	Log(ctx, newLogEntry(LogLevelDebug, message, nil, attrs))
}

func Info(ctx context.Context, message string, attrs attributes) {
	Log(ctx, newLogEntry(LogLevelInfo, message, nil, attrs))
}

func Warn(ctx context.Context, message string, attrs attributes) {
	Log(ctx, newLogEntry(LogLevelWarn, message, nil, attrs))
}

func Error(ctx context.Context, message string, err error, attrs attributes) {
	Log(ctx, newLogEntry(LogLevelError, message, err, attrs))
}

// Fatal logs and terminates the process.
func Fatal(ctx context.Context, message string, err error, attrs attributes) {
	Log(ctx, newLogEntry(LogLevelFatal, message, err, attrs))
}

func Log(ctx context.Context, entry LogEntry) {
	if entry.Level.rank() < int(minRank.Load()) {
		return
	}
	globalLogger.Log(ctx, entry)
}

func Shutdown(ctx context.Context) error {
	return globalLogger.Shutdown(ctx)
}

func Initialize(opts Options) error {
	var (
		l   Logger
		err error
	)

	if opts.IsProduction {
		l, err = initializeOtelLogger(opts.CollectorEndpoint, opts.ServiceName, opts.Environment)
	} else {
		l, err = initStdoutLogger(opts.ServiceName)
	}

	if err != nil {
		return err
	}

	minRank.Store(int32(opts.Level.rank()))
	globalLogger = l
	return nil
}
