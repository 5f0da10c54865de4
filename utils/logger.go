package utils

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NopLogger returns a logger that discards everything written to it.
func NopLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// LoggerOrNop returns log, or a discarding logger if log is nil.
func LoggerOrNop(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return NopLogger()
	}
	return log
}

// DebugEnabled returns true if log writes debug entries. Loggers other than logrus ones are assumed to.
func DebugEnabled(log logrus.FieldLogger) bool {
	switch l := log.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.DebugLevel)
	}
	return true
}
