package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

// SQLiteService backs local development and the storage tests. SQLite serializes writers,
// so the pool is pinned to a single connection.
type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSQLiteService(path string, logg *logger.Logger) (*SQLiteService, error) {
	serviceLog := logg.With("service", "SQLiteService")
	if path == "" {
		path = "file:coursebridge?mode=memory&cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   newGormLogger(logg),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}
	if err := applyPool(db, 1, 1); err != nil {
		return nil, err
	}

	serviceLog.Info("Opened sqlite database", "path", path)
	return &SQLiteService{db: db, log: serviceLog}, nil
}

func (s *SQLiteService) DB() *gorm.DB { return s.db }

func (s *SQLiteService) AutoMigrateAll() error {
	return migrate(s.db, s.log)
}

func (s *SQLiteService) Close() error {
	return closeDB(s.db)
}
