// Package zaplog adapts a zap.SugaredLogger to the session.Logger interface.
package zaplog

import (
	"github.com/goliatone/go-session"
	"go.uber.org/zap"
)

var _ session.Logger = &Logger{}

type Logger struct {
	log *zap.SugaredLogger
}

// New wraps the given zap logger. Passing nil uses zap's no-op logger.
func New(log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log.Sugar()}
}

func (l *Logger) Debug(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.log.Errorf(format, args...)
}
