package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

// NewLogger routes gorm's log output through logrus at a level matching the
// application's --log-level.
func NewLogger(level string) logger.Interface {
	lvl := logger.Warn
	switch level {
	case "trace", "debug":
		lvl = logger.Info
	case "error":
		lvl = logger.Error
	}

	return logger.New(logrus.StandardLogger(), logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}
