// Package testdb opens throwaway SQLite databases carrying the real roster
// schema, for tests of the store, services and handlers.
package testdb

import (
	"database/sql"
	"path/filepath"
	"testing"

	"roster-api/migrations"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// OpenEmpty returns a gorm handle on a new SQLite file in t.TempDir() with
// foreign keys enforced and no schema.
func OpenEmpty(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "roster.db") +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(sqlite.New(sqlite.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return db
}

// Open returns a migrated database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db := OpenEmpty(t)
	migrator, err := migrations.NewMigrator(db)
	if err != nil {
		t.Fatalf("new migrator: %v", err)
	}
	migrations.Register(migrator)
	if err := migrator.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
