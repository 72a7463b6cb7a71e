package db

import (
	"time"

	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

// gormWriter routes gorm's printf-style output into the structured logger.
type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.SugaredLogger.Warnf(format, args...)
}

func newGormLogger(logg *logger.Logger) gormLogger.Interface {
	return gormLogger.New(
		gormWriter{log: logg.With("component", "gorm")},
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
