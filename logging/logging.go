// Package logging provides the structured logger used across the costmap
// and planner packages, backed by go.uber.org/zap.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger is the structured, leveled logger every package in this module
// takes instead of reaching for the global `log` package.
type Logger interface {
	Named(name string) Logger
	Sublogger(subname string) Logger

	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})

	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})

	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})

	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, err error, keysAndValues ...interface{})
}

type zapLogger struct {
	*zap.SugaredLogger
}

// NewLogger returns a logger that writes Info+ logs to stdout, colorized,
// for interactive/development use.
func NewLogger(name string) Logger {
	cfg := consoleConfig(zapcore.InfoLevel)
	l := zap.Must(cfg.Build())
	return &zapLogger{l.Sugar().Named(name)}
}

// NewDebugLogger returns a logger that also emits Debug level logs.
func NewDebugLogger(name string) Logger {
	cfg := consoleConfig(zapcore.DebugLevel)
	l := zap.Must(cfg.Build())
	return &zapLogger{l.Sugar().Named(name)}
}

// NewTestLogger returns a logger that writes through testing.TB's Log
// method.
func NewTestLogger(tb testing.TB) Logger {
	return &zapLogger{zaptest.NewLogger(tb, zaptest.Level(zapcore.DebugLevel)).Sugar()}
}

func consoleConfig(level zapcore.Level) zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

func (z *zapLogger) Named(name string) Logger {
	return &zapLogger{z.SugaredLogger.Named(name)}
}

func (z *zapLogger) Sublogger(subname string) Logger {
	return z.Named(subname)
}

func (z *zapLogger) Errorw(msg string, err error, keysAndValues ...interface{}) {
	kv := append([]interface{}{"error", err}, keysAndValues...)
	z.SugaredLogger.Errorw(msg, kv...)
}
