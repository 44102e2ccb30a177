package db

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite opens a single-file database through the same gorm handle type
// as Connect, so blob repositories work against either.
func OpenSQLite(path string) (*Postgres, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm sqlite: %w", err)
	}
	return &Postgres{DB: db}, nil
}
