// Package logging is the structured logging facade used for setup-time and
// between-call diagnostics (dictionary load stats, plugin registration,
// deprecated-class-name warnings). Per-call tokenization errors are never
// routed through here — they are always returned to the caller, never
// logged or swallowed. Concrete implementations are backed by
// go.uber.org/zap; callers depend only on the Logger interface so the
// backend can be swapped (e.g. NewNopLogger in tests) without touching
// business logic.
package logging

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a typed key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

func String(key, val string) Field     { return Field{key, val} }
func Int(key string, val int) Field     { return Field{key, val} }
func Int64(key string, val int64) Field { return Field{key, val} }
func Bool(key string, val bool) Field   { return Field{key, val} }
func Duration(key string, val time.Duration) Field { return Field{key, val} }

// Err captures an error under the canonical key "error".
func Err(err error) Field {
	if err == nil {
		return Field{"error", "<nil>"}
	}
	return Field{"error", err.Error()}
}

// Logger is the logging contract every package in this module depends on.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Named(name string) Logger
}

type zapLogger struct{ z *zap.Logger }

func toZapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out = append(out, zap.String(f.Key, v))
		case int:
			out = append(out, zap.Int(f.Key, v))
		case int64:
			out = append(out, zap.Int64(f.Key, v))
		case bool:
			out = append(out, zap.Bool(f.Key, v))
		case time.Duration:
			out = append(out, zap.Duration(f.Key, v))
		default:
			out = append(out, zap.Any(f.Key, v))
		}
	}
	return out
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.z.Debug(msg, toZapFields(fields)...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.z.Info(msg, toZapFields(fields)...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.z.Warn(msg, toZapFields(fields)...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.z.Error(msg, toZapFields(fields)...) }
func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{z: l.z.With(toZapFields(fields)...)}
}
func (l *zapLogger) Named(name string) Logger { return &zapLogger{z: l.z.Named(name)} }

// New constructs a Logger at the given zapcore level ("debug", "info",
// "warn", "error"; anything else defaults to "info").
func New(level string) (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("logging: failed to build zap logger: %w", err)
	}
	return &zapLogger{z: z}, nil
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...Field)    {}
func (nopLogger) Info(string, ...Field)     {}
func (nopLogger) Warn(string, ...Field)     {}
func (nopLogger) Error(string, ...Field)    {}
func (n nopLogger) With(...Field) Logger    { return n }
func (n nopLogger) Named(string) Logger     { return n }

// NewNopLogger returns a Logger that discards everything; used as the
// zero-value default and in tests.
func NewNopLogger() Logger { return nopLogger{} }

var (
	mu  sync.RWMutex
	def Logger = nopLogger{}
)

// SetDefault replaces the process-wide default Logger.
func SetDefault(l Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	def = l
	mu.Unlock()
}

// Default returns the process-wide default Logger.
func Default() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return def
}
