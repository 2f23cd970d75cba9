package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// TestNewLoggerLevel tests level parsing
func TestNewLoggerLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("warn").GetLevel())
}

// TestNewLoggerInvalidLevelDefaults tests the info fallback
func TestNewLoggerInvalidLevelDefaults(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, NewLogger("verbose").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("").GetLevel())
}

// TestNewLoggerProductionFormat tests the JSON formatter switch
func TestNewLoggerProductionFormat(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	logger := NewLogger("info")
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	t.Setenv("ENVIRONMENT", "development")
	logger = NewLogger("info")
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
