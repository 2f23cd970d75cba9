// Package logger builds the logrus instances used across the estimation
// service. Estimation paths log structured fields (track, tier, skill) so
// production output is JSON for the log pipeline to index; everywhere else
// it stays human-readable text.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a logger at the given level. An unparseable level is
// logged and downgraded to info rather than failing startup; a broken log
// config must not keep lap time estimates from serving.
func NewLogger(logLevel string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("ENVIRONMENT") == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	return logger
}
