package db

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestOpenCreatesParentDirAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "site.db")

	gdb, err := Open(path)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	migrator := gdb.Migrator()
	if !migrator.HasTable(&User{}) {
		t.Fatal("expected users table after migration")
	}
	if !migrator.HasTable(&Post{}) {
		t.Fatal("expected posts table after migration")
	}
}

func TestOpenDropsLegacyAuthColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	// Simulate a database from before login state moved into the session.
	legacy, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open legacy database: %v", err)
	}
	if err := legacy.AutoMigrate(&User{}); err != nil {
		t.Fatalf("migrate legacy database: %v", err)
	}
	if err := legacy.Exec("ALTER TABLE users ADD COLUMN is_authenticated boolean").Error; err != nil {
		t.Fatalf("add legacy column: %v", err)
	}

	gdb, err := Open(path)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if gdb.Migrator().HasColumn(&User{}, "is_authenticated") {
		t.Fatal("expected legacy login column to be dropped")
	}
}
