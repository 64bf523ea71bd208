package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQLite abre una base SQLite con GORM (driver puro Go, sin cgo).
// SQLite admite un único escritor, así que se limita a una conexión.
func OpenSQLite(dsn string, log gormlogger.Interface) (*gorm.DB, error) {
	config := &gorm.Config{}
	if log != nil {
		config.Logger = log
	}

	database, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return database, nil
}
