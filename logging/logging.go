// Package logging provides the zap-backed implementation of middleware.Logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/keyrates/toolschema/middleware"
)

// Log levels accepted by New and SetLevel.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "lvl",
	NameKey:        "name",
	CallerKey:      "caller",
	MessageKey:     "message",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// Logger adapts a zap logger to middleware.Logger.
type Logger struct {
	zl    *zap.Logger
	level zap.AtomicLevel
}

var _ middleware.Logger = (*Logger)(nil)

// New returns a console logger writing to stderr at the given level.
func New(level string) (*Logger, error) {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a console logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	atom := zap.NewAtomicLevelAt(lvl)
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		atom,
	)
	return &Logger{
		zl:    zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)),
		level: atom,
	}, nil
}

// FromZap wraps an existing zap logger.
func FromZap(zl *zap.Logger) *Logger {
	return &Logger{zl: zl, level: zap.NewAtomicLevelAt(zl.Level())}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return FromZap(zap.NewNop())
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	l.level.SetLevel(lvl)
	return nil
}

// Level returns the current level name.
func (l *Logger) Level() string {
	return l.level.Level().String()
}

// Zap returns the underlying zap logger.
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// With returns a child logger that adds fields to every entry.
func (l *Logger) With(fields ...middleware.Field) *Logger {
	return &Logger{zl: l.zl.With(zapFields(fields)...), level: l.level}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func (l *Logger) Info(msg string, fields ...middleware.Field) {
	l.zl.Info(msg, zapFields(fields)...)
}

func (l *Logger) Error(msg string, fields ...middleware.Field) {
	l.zl.Error(msg, zapFields(fields)...)
}

func (l *Logger) Debug(msg string, fields ...middleware.Field) {
	l.zl.Debug(msg, zapFields(fields)...)
}

func (l *Logger) Warn(msg string, fields ...middleware.Field) {
	l.zl.Warn(msg, zapFields(fields)...)
}

func zapFields(fields []middleware.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "", LevelInfo:
		return zapcore.InfoLevel, nil
	case LevelDebug:
		return zapcore.DebugLevel, nil
	case LevelWarn, "warning":
		return zapcore.WarnLevel, nil
	case LevelError:
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}
