// Package dbtest opens a migrated in-memory SQLite database for tests.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lunor.shop/app/internal/config"
	"lunor.shop/app/internal/database"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DB{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, nil)
	if err != nil {
		t.Fatalf("dbtest: open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("dbtest: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("dbtest: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
