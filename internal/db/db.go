// Package db opens the SQL backend used when the document database is not.
package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Connect opens dsn with the named driver and migrates the given models.
// TranslateError is on so unique violations surface as gorm.ErrDuplicatedKey.
func Connect(driver, dsn string, models ...any) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMySQL, "":
		if dsn == "" {
			dsn = "app:apppass@tcp(127.0.0.1:3306)/court_chat_db?charset=utf8mb4&parseTime=true&loc=Local"
		}
		dialector = mysql.Open(dsn)
	case DriverPostgres, "postgresql":
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		if dsn == "" {
			dsn = "file:legal.db?_pragma=busy_timeout(5000)"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", driver, err)
	}
	if len(models) > 0 {
		if err := gdb.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("db: migrate: %w", err)
		}
	}
	return gdb, nil
}
