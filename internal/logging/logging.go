// Package logging hands out scoped pion leveled loggers. Log levels are
// controlled by the PION_LOG_* environment variables read by the default
// factory.
package logging

import (
	"github.com/pion/logging"
)

var loggerFactory logging.LoggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger returns a logger for scope from the default factory.
func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scope)
}

// NewLoggerFrom returns a logger for scope from f, or from the default
// factory when f is nil.
func NewLoggerFrom(f logging.LoggerFactory, scope string) logging.LeveledLogger {
	if f == nil {
		return NewLogger(scope)
	}
	return f.NewLogger(scope)
}
