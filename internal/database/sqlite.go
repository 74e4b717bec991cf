package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"seatmap/config"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// InitSQLite 開啟本機 SQLite 檔案，必要時建立目錄
func InitSQLite(config *config.SQLiteConfig) (*sql.DB, error) {
	path := config.Path
	if path == "" {
		path = "seatmap.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite 單一寫入者
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}
