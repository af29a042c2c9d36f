package database

import (
	"time"

	"gorm.io/gorm/logger"
)

// newGormLogger routes gorm's SQL logging through the package logrus instance
func newGormLogger() logger.Interface {
	return logger.New(log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
