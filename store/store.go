// Package store holds the per-entity repositories. Every mutation runs inside
// a transaction; callers see fully-applied state or none. Errors surface as
// one of the sentinels below, or wrapped for the catch-all translator.
package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vols_gis/backend/config"
	"vols_gis/backend/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("record already exists")
	ErrUnavailable = errors.New("storage unavailable")
)

// Open connects to Postgres when a DSN is configured, otherwise to the sqlite
// file. TranslateError maps driver duplicate-key errors onto gorm sentinels.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.DBPath)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return db, nil
}

// Migrate creates or updates all entity tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

var unavailableMarkers = []string{
	"connection refused",
	"bad connection",
	"database is closed",
	"database is locked",
	"no such host",
	"connection reset",
}

// wrap classifies a gorm/driver error into the store taxonomy. Raw backend
// text stays inside the wrapped error for logging and never reaches clients.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrUnavailable) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
		return ErrConflict
	}
	for _, marker := range unavailableMarkers {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return err
}
