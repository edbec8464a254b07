package testutil

import (
	"testing"

	"helpdesk/internal/database"
	"helpdesk/internal/storage"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory sqlite database with migrations
// applied. Each call returns an isolated database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get test db instance: %v", err)
	}
	// Keep the :memory: database on a single connection.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// NewTestStore returns a Store over a fresh in-memory database.
func NewTestStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.NewStore(NewTestDB(t))
}
