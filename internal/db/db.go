package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the sqlite database and runs the automatic migrations.
// An empty databasePath falls back to nemosite.db.
func Open(databasePath string) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "nemosite.db"
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(
		&User{},
		&Post{},
	); err != nil {
		return nil, err
	}

	// Earlier deployments persisted the login flag on the user row.
	// Authentication state lives in the session now, so the column goes.
	migrator := gdb.Migrator()
	if migrator.HasColumn(&User{}, "is_authenticated") {
		if dropErr := migrator.DropColumn(&User{}, "is_authenticated"); dropErr != nil {
			return nil, dropErr
		}
	}

	return gdb, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
