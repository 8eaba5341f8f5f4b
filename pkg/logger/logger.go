// Package logger provides the leveled logger shared by application services.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog logger tagged with the owning component.
type Logger struct {
	zl zerolog.Logger
}

// NewDefault creates a logger for the named component using the level and
// format taken from the environment (LOG_LEVEL, LOG_FORMAT).
func NewDefault(component string) *Logger {
	return New(component, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// New creates a logger for the named component. Level defaults to info,
// format defaults to console; format "json" emits structured JSON.
func New(component, level, format string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if strings.EqualFold(format, "json") {
		zl = zerolog.New(os.Stderr)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	zl = zl.Level(lvl).With().Timestamp().Str("component", component).Logger()

	return &Logger{zl: zl}
}

// With returns a child logger carrying an extra key/value pair.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zl.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.zl.Error().Msg(msg) }

func (l *Logger) Debugf(format string, args ...any) { l.zl.Debug().Msgf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.zl.Info().Msgf(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.zl.Warn().Msgf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.zl.Error().Msgf(format, args...) }
