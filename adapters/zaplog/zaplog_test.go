package zaplog_test

import (
	"testing"

	"github.com/goliatone/go-session/adapters/zaplog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerForwardsToZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zaplog.New(zap.New(core))

	logger.Debug("restoring session for %s", "usr-1")
	logger.Info("login ok")
	logger.Error("refresh failed: %s", "timeout")

	entries := logs.All()
	assert.Len(t, entries, 3)
	assert.Equal(t, "restoring session for usr-1", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "login ok", entries[1].Message)
	assert.Equal(t, "refresh failed: timeout", entries[2].Message)
}

func TestLoggerNilFallback(t *testing.T) {
	assert.NotPanics(t, func() {
		logger := zaplog.New(nil)
		logger.Info("noop")
	})
}
