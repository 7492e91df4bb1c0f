package storage

import (
	"context"

	"pos-sync-service/apperrors"
	"pos-sync-service/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store owns the embedded SQLite database holding orders, order items and
// the menu cache. It is constructed once at startup and injected into the
// repositories and the sync manager; there is no package-level handle.
type Store struct {
	db *gorm.DB
}

// Open opens or creates the database file and ensures all tables exist.
// Safe to call on every start; AutoMigrate only adds what is missing.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, apperrors.StorageUnavailable("failed to open database at "+path, err)
	}

	// One connection: the terminal has a single logical writer, and SQLite
	// serializes writers anyway.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.StorageUnavailable("failed to access connection pool", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.MenuItem{},
	)
	if err != nil {
		return nil, apperrors.StorageUnavailable("failed to migrate schema", err)
	}

	return &Store{db: db}, nil
}

// DB exposes the handle to the repository layer. Other packages go through
// the repositories, never the raw handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn as a single unit of work: every statement commits or
// none do, with rollback on error or panic. The connection lock is released
// on every exit path.
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}
