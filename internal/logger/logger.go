// Package logger builds the console logger of the command line tools
// and bridges it to the net64update.Logger interface.
package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a *zap.SugaredLogger writing in simple console format to stderr.
// When level is nil, messages from InfoLevel up are kept.
func New(level zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	return NewWithWriter(os.Stderr, level, options...)
}

// NewWithWriter is New with a custom destination.
func NewWithWriter(w io.Writer, level zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	if level == nil {
		level = zapcore.InfoLevel
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "message",
		LevelKey:         "level",
		TimeKey:          "time",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core, options...).Sugar()
}

// ParseLogLevel converts string input to zap log level.
func ParseLogLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info", "":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// Library adapts a sugared logger to net64update.Logger.
// The library's progress messages are debug output; its warnings stay warnings.
type Library struct {
	sugar *zap.SugaredLogger
}

// ForLibrary wraps l so it can be passed to net64update.SetLogger.
func ForLibrary(l *zap.SugaredLogger) *Library {
	return &Library{sugar: l}
}

func (l *Library) Print(v ...interface{}) {
	l.sugar.Debug(v...)
}

func (l *Library) Printf(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

func (l *Library) Warnf(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}
