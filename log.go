package main

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.SugaredLogger
	loggerOnce sync.Once
	logLevel   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Logger returns the process-wide logger. Components embed it and add their
// own fields with With.
func Logger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		config := zap.NewDevelopmentConfig()
		config.Level = logLevel
		config.DisableStacktrace = true
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

		l, err := config.Build()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l.Sugar()
	})

	return logger
}

// SetLogLevel changes the level of the process-wide logger, e.g. "debug".
func SetLogLevel(level string) error {
	return logLevel.UnmarshalText([]byte(level))
}
