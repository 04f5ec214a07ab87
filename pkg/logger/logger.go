package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level is a log level name as found in LOG_LEVEL.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// ParseLevel maps a configured level name to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal:
		return l
	}
	return LevelInfo
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	}
	return zerolog.InfoLevel
}

// Logger is the logging interface used across the service.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Fatal(msg string, err error, fields ...Field)

	WithContext(ctx context.Context) Logger
	WithFields(fields ...Field) Logger
	WithRequestID(requestID string) Logger
	WithUserID(userID int64) Logger
	WithComponent(component string) Logger
}

// Field is a structured log field.
type Field struct {
	Key   string
	Value interface{}
}

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	logger zerolog.Logger
}

// Config holds logger settings.
type Config struct {
	Level       Level
	Environment string // "development" or "production"
	ServiceName string
	Version     string
	Output      io.Writer
}

const defaultServiceName = "cookie-notice"

var (
	globalMu     sync.RWMutex
	globalLogger *ZerologLogger
)

// New builds a logger without touching the global one.
// Production writes JSON, anything else a console format.
func New(cfg Config) *ZerologLogger {
	var output io.Writer = os.Stdout
	if cfg.Output != nil {
		output = cfg.Output
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	var zl zerolog.Logger
	if cfg.Environment == "production" {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		zl = zerolog.New(output).
			With().
			Timestamp().
			Str("service", cfg.ServiceName).
			Str("version", cfg.Version).
			Logger()
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}).
			With().
			Timestamp().
			Logger()
	}
	return &ZerologLogger{logger: zl.Level(cfg.Level.zerolog())}
}

// Init replaces the global logger.
func Init(cfg Config) {
	l := New(cfg)
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// Get returns the global logger, initializing a development logger on first use.
func Get() Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = New(Config{Level: LevelInfo, Environment: "development"})
	}
	return globalLogger
}

func (l *ZerologLogger) write(event *zerolog.Event, msg string, err error, fields []Field) {
	if err != nil {
		event = event.Err(err)
	}
	for _, f := range fields {
		event = event.Interface(f.Key, f.Value)
	}
	event.Msg(msg)
}

func (l *ZerologLogger) Debug(msg string, fields ...Field) {
	l.write(l.logger.Debug(), msg, nil, fields)
}

func (l *ZerologLogger) Info(msg string, fields ...Field) {
	l.write(l.logger.Info(), msg, nil, fields)
}

func (l *ZerologLogger) Warn(msg string, fields ...Field) {
	l.write(l.logger.Warn(), msg, nil, fields)
}

func (l *ZerologLogger) Error(msg string, err error, fields ...Field) {
	l.write(l.logger.Error(), msg, err, fields)
}

// Fatal logs and exits the process.
func (l *ZerologLogger) Fatal(msg string, err error, fields ...Field) {
	l.write(l.logger.Fatal(), msg, err, fields)
}

// WithContext adds the request and user ids found in ctx.
func (l *ZerologLogger) WithContext(ctx context.Context) Logger {
	zc := l.logger.With()
	if requestID := GetRequestID(ctx); requestID != "" {
		zc = zc.Str("request_id", requestID)
	}
	if userID := GetUserID(ctx); userID != 0 {
		zc = zc.Int64("user_id", userID)
	}
	return &ZerologLogger{logger: zc.Logger()}
}

func (l *ZerologLogger) WithFields(fields ...Field) Logger {
	zc := l.logger.With()
	for _, f := range fields {
		zc = zc.Interface(f.Key, f.Value)
	}
	return &ZerologLogger{logger: zc.Logger()}
}

func (l *ZerologLogger) WithRequestID(requestID string) Logger {
	return &ZerologLogger{logger: l.logger.With().Str("request_id", requestID).Logger()}
}

func (l *ZerologLogger) WithUserID(userID int64) Logger {
	return &ZerologLogger{logger: l.logger.With().Int64("user_id", userID).Logger()}
}

func (l *ZerologLogger) WithComponent(component string) Logger {
	return &ZerologLogger{logger: l.logger.With().Str("component", component).Logger()}
}
