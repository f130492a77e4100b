// Package postgres implements the administrative and RADIUS stores on one
// Postgres database so that a single transaction can span both.
package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens a gorm handle and verifies connectivity. TranslateError is
// enabled so unique-constraint violations surface as gorm.ErrDuplicatedKey.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates all tables. In production the FreeRADIUS
// tables typically pre-exist with the standard schema, which these models
// match; migrating them is then a no-op.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&managementUser{},
		&managedGuest{},
		&radCheck{},
		&radUserGroup{},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}
