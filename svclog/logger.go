// Package svclog provides logging facilities for services using this
// library.
package svclog

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Config for logger.
type Config struct {
	AppName  string `env:"APP_NAME,default=httpinstrument"`
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

// NewLogger returns a new logger that includes the app name in each log
// line.
func NewLogger(cfg Config) logrus.FieldLogger {
	logger := logrus.WithField("app", cfg.AppName)

	if l, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(l)
	}
	return logger
}

type printfer interface {
	Printf(format string, args ...interface{})
}

// SampleLogger is a rate limited logger that drops lines above a
// configurable burst per window. It is meant for messages emitted on a
// per-request basis, where a single misbehaving client would otherwise
// flood the logs.
type SampleLogger struct {
	logger  printfer
	limiter *rate.Limiter
}

// NewSampleLogger creates a SampleLogger allowing logsBurstLimit lines per
// logBurstWindow.
func NewSampleLogger(logger printfer, logsBurstLimit int, logBurstWindow time.Duration) *SampleLogger {
	limiter := rate.NewLimiter(rate.Every(logBurstWindow), logsBurstLimit)
	return &SampleLogger{
		logger:  logger,
		limiter: limiter,
	}
}

// Printf logs the line if the limiter allows it and drops it otherwise.
func (l *SampleLogger) Printf(format string, args ...interface{}) {
	if l.limiter.Allow() {
		l.logger.Printf(format, args...)
	}
}
