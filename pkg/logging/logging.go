package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey int

const loggingContextKey ctxKey = iota

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	FormatConsole = "console"
	FormatJSON    = "json"
)

var Prod = zap.NewProductionConfig()
var Dev = zap.NewDevelopmentConfig()

func init() {
	Prod.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
}

// Create builds a named sugared logger from cfg.
func Create(name string, cfg zap.Config) (*zap.SugaredLogger, error) {
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Named(name).Sugar(), nil
}

type KVLogger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
	With(keyvals ...interface{}) KVLogger
}

// New returns a named KVLogger. Debug level uses the development config,
// everything else the production one.
func New(name, level, format string) (KVLogger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := Prod
	if lvl == zapcore.DebugLevel {
		cfg = Dev
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if format != "" {
		cfg.Encoding = format
	}

	l, err := Create(name, cfg)
	if err != nil {
		return nil, err
	}
	return NewKV(l), nil
}

// NewKV wraps an existing sugared logger. A nil logger means the zap global.
func NewKV(l *zap.SugaredLogger) KVLogger {
	if l == nil {
		l = zap.S()
	}
	return kvLogger{l}
}

type kvLogger struct {
	l *zap.SugaredLogger
}

func (k kvLogger) Debug(msg string, keyvals ...interface{}) { k.l.Debugw(msg, keyvals...) }
func (k kvLogger) Info(msg string, keyvals ...interface{})  { k.l.Infow(msg, keyvals...) }
func (k kvLogger) Warn(msg string, keyvals ...interface{})  { k.l.Warnw(msg, keyvals...) }
func (k kvLogger) Error(msg string, keyvals ...interface{}) { k.l.Errorw(msg, keyvals...) }

func (k kvLogger) With(keyvals ...interface{}) KVLogger {
	return kvLogger{k.l.With(keyvals...)}
}

type NoopKVLogger struct{}

func (NoopKVLogger) Debug(msg string, keyvals ...interface{}) {}
func (NoopKVLogger) Info(msg string, keyvals ...interface{})  {}
func (NoopKVLogger) Warn(msg string, keyvals ...interface{})  {}
func (NoopKVLogger) Error(msg string, keyvals ...interface{}) {}

func (l NoopKVLogger) With(keyvals ...interface{}) KVLogger {
	return l
}

func AddToContext(ctx context.Context, l KVLogger) context.Context {
	return context.WithValue(ctx, loggingContextKey, l)
}

func GetFromContext(ctx context.Context) KVLogger {
	l, ok := ctx.Value(loggingContextKey).(KVLogger)
	if !ok {
		return NoopKVLogger{}
	}
	return l
}
